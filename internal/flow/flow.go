// Package flow drives the five-step interview: one message in, at most one
// validated field written, step advanced when every field of the step has
// been answered or skipped.
package flow

import (
	"github.com/fdg312/fitcoach/internal/intake"
	"github.com/fdg312/fitcoach/internal/profile"
)

// Result описывает итог одного хода интервью.
type Result struct {
	// Field the message was matched against, "" when the interview was
	// already complete.
	Field string
	// Value written to the profile (canonical form), "" on a miss, a
	// rejection or an optional skip.
	Value string
	// Saved is true when the profile gained a value (including a skip).
	Saved bool
	// ErrorMessage carries the validator rejection to show the user.
	ErrorMessage string
	// Step after processing the message.
	Step string
	// StepChanged is true when the message completed the current step.
	StepChanged bool
	// Complete is true once every step is done.
	Complete bool
	// NextField is the field to ask about next, "" when complete.
	NextField string
}

// NextField returns the first unanswered field of the step, "" when the step
// has no open fields.
func NextField(p profile.Profile, step string) string {
	for _, name := range profile.StepFields[step] {
		if !p.Has(name) {
			return name
		}
	}
	return ""
}

// Advance processes one user message against the profile. Exactly one field
// is targeted per message: the first unanswered field of the current step.
// Extraction misses leave the profile untouched, validator rejections surface
// their message, optional fields accept an explicit refusal as a skip.
func Advance(p profile.Profile, currentStep, message string) Result {
	if currentStep == "" {
		currentStep = profile.Steps[0]
	}
	res := Result{Step: currentStep}

	if p.IsComplete() {
		res.Complete = true
		return res
	}

	field := NextField(p, currentStep)
	if field == "" {
		// Шаг уже закрыт — двигаем указатель и пробуем заново
		res.Step = advanceStep(p, currentStep)
		res.StepChanged = res.Step != currentStep
		if p.IsComplete() {
			res.Complete = true
			return res
		}
		field = NextField(p, res.Step)
	}
	res.Field = field

	if profile.IsOptional(field) && intake.IsRefusal(message) {
		p.Set(field, "")
		res.Saved = true
	} else {
		value, ok := intake.Extract(field, message)
		if !ok {
			res.NextField = field
			return res
		}
		if accepted, msg := intake.Validate(field, value); !accepted {
			res.ErrorMessage = msg
			res.NextField = field
			return res
		}
		p.Set(field, value)
		res.Value = p.Str(field)
		res.Saved = true
	}

	next := advanceStep(p, res.Step)
	res.StepChanged = next != res.Step
	res.Step = next
	if p.IsComplete() {
		res.Complete = true
		return res
	}
	res.NextField = NextField(p, res.Step)
	return res
}

// advanceStep moves past every fully answered step starting at current.
func advanceStep(p profile.Profile, current string) string {
	for p.IsStepComplete(current) {
		next := profile.NextStep(current)
		if next == "" {
			return current
		}
		current = next
	}
	return current
}
