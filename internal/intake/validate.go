// Package intake turns raw user answers into validated profile values:
// validate.go checks a candidate value for one field, extract.go pulls a
// candidate value out of a free-form chat message.
package intake

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fdg312/fitcoach/internal/profile"
)

// nameRejectTokens — ответы, которые не являются именем
var nameRejectTokens = map[string]bool{
	"no": true, "nothing": true, "none": true, "don't": true, "dont": true,
	"skip": true, "pass": true, "not": true, "n/a": true, "na": true,
	"nope": true, "nah": true,
}

var validChoices = map[string]map[string]bool{
	profile.FieldGender: {
		profile.GenderMale: true, profile.GenderFemale: true, profile.GenderOther: true,
	},
	profile.FieldGoal: {
		profile.GoalFatLoss: true, profile.GoalMuscleGain: true, profile.GoalMaintenance: true,
	},
	profile.FieldActivityLevel: {
		profile.ActivitySedentary: true, profile.ActivityModerate: true, profile.ActivityActive: true,
	},
	profile.FieldWorkoutExperience: {
		profile.ExperienceBeginner: true, profile.ExperienceIntermediate: true, profile.ExperienceAdvanced: true,
	},
	profile.FieldCookingHabits: {
		profile.CookingHomeCooked: true, profile.CookingMixed: true, profile.CookingOutside: true,
	},
}

var choiceMessages = map[string]string{
	profile.FieldGender:            "Please specify your gender: male, female, or other.",
	profile.FieldGoal:              "Please specify a valid goal: fat loss, muscle gain, or maintenance.",
	profile.FieldActivityLevel:     "Please specify a valid activity level: sedentary, moderate, or active.",
	profile.FieldWorkoutExperience: "Please specify a valid experience level: beginner, intermediate, or advanced.",
	profile.FieldCookingHabits:     "Please specify your cooking habits: home cooked, mixed, or outside food.",
}

// Validate checks a raw answer for the given field. It returns ok=false with a
// user-facing message when the value cannot be stored. Empty values pass for
// optional fields (an explicit skip) and fail for required ones.
func Validate(field, raw string) (bool, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if profile.IsOptional(field) {
			return true, ""
		}
		return false, fmt.Sprintf("%s is required.", titleWords(profile.Label(field)))
	}

	def, ok := profile.Lookup(field)
	if !ok {
		return false, fmt.Sprintf("Unknown field %s.", field)
	}

	switch {
	case field == profile.FieldName:
		return validateName(raw)
	case field == profile.FieldDietType:
		return validateDietType(raw)
	case def.Kind == profile.KindNumber:
		return validateNumber(def, raw)
	case def.Kind == profile.KindChoice:
		return validateChoice(field, raw)
	case def.Kind == profile.KindTime:
		return validateTime(field, raw)
	default:
		return true, ""
	}
}

// validateNumber enforces positivity first, then the field range. Negative
// input gets its own message so the user sees what exactly was wrong.
func validateNumber(def profile.FieldDef, raw string) (bool, string) {
	label := profile.Label(def.Name)
	if strings.HasPrefix(raw, "-") {
		return false, fmt.Sprintf("Please enter a positive number for %s. Negative values are not allowed. The value must be greater than 0.", label)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return false, fmt.Sprintf("Please enter a valid number for %s.", label)
	}
	if value <= 0 {
		return false, fmt.Sprintf("Please enter a positive number for %s. Zero and negative values are not allowed. The value must be greater than 0.", label)
	}
	if value < def.Min || value > def.Max {
		return false, rangeMessage(def)
	}
	return true, ""
}

func rangeMessage(def profile.FieldDef) string {
	unit := ""
	if def.Unit != "" {
		unit = " " + def.Unit
	}
	return fmt.Sprintf("%s must be between %s and %s%s.",
		capitalize(profile.Label(def.Name)), formatBound(def.Min), formatBound(def.Max), unit)
}

func validateName(raw string) (bool, string) {
	if len([]rune(raw)) < 2 {
		return false, "Please provide your name. If you prefer not to share, you can use a nickname or initials."
	}
	if nameRejectTokens[strings.ToLower(raw)] {
		return false, "That doesn't look like a name. Please provide your name or a nickname."
	}
	if isAllDigits(raw) {
		return false, "Please provide a name, not just numbers."
	}
	return true, ""
}

func validateDietType(raw string) (bool, string) {
	switch profile.NormalizeDietType(raw) {
	case profile.DietVeg, profile.DietNonVeg, profile.DietVegan, profile.DietPescatarian:
		return true, ""
	}
	return false, "Please specify a valid diet type: vegetarian, non-vegetarian, vegan, or pescatarian."
}

func validateChoice(field, raw string) (bool, string) {
	if validChoices[field][strings.ToLower(raw)] {
		return true, ""
	}
	return false, choiceMessages[field]
}

func validateTime(field, raw string) (bool, string) {
	if isClockTime(raw) {
		return true, ""
	}
	return false, fmt.Sprintf("Please provide a valid time for %s (e.g., 07:00).", profile.Label(field))
}

// isClockTime matches H:MM / HH:MM with a valid hour and minute.
func isClockTime(s string) bool {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || len(parts[1]) != 2 {
		return false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return false
	}
	return true
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}
