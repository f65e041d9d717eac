package profile

import (
	"strconv"
	"strings"
)

// Canonical choice tokens stored in a profile.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"

	GoalFatLoss     = "fat_loss"
	GoalMuscleGain  = "muscle_gain"
	GoalMaintenance = "maintenance"

	DietVeg         = "veg"
	DietNonVeg      = "non_veg"
	DietVegan       = "vegan"
	DietPescatarian = "pescatarian"

	ActivitySedentary = "sedentary"
	ActivityModerate  = "moderate"
	ActivityActive    = "active"

	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"

	CookingHomeCooked = "home_cooked"
	CookingMixed      = "mixed"
	CookingOutside    = "outside_food"
)

// Profile — собранные данные интервью. Ключ присутствует = поле отвечено;
// для optional-полей пустая строка означает явный пропуск.
type Profile map[string]any

// New returns an empty profile.
func New() Profile {
	return Profile{}
}

// Has reports whether the field has been answered (including an explicit skip).
func (p Profile) Has(field string) bool {
	_, ok := p[field]
	return ok
}

// Str returns the string form of a field value, "" when absent.
func (p Profile) Str(field string) string {
	v, ok := p[field]
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

// Int returns the integer value of a field. JSON round-trips store numbers as
// float64, so both forms are handled.
func (p Profile) Int(field string) int {
	switch t := p[field].(type) {
	case int:
		return t
	case float64:
		return int(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return int(f)
	default:
		return 0
	}
}

// Float returns the numeric value of a field, 0 when absent or non-numeric.
func (p Profile) Float(field string) float64 {
	switch t := p[field].(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Set stores a validated raw value under its canonical representation:
// integer fields as int, decimal fields as float64, diet type as its
// canonical token, everything else as a trimmed string.
func (p Profile) Set(field, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		p[field] = ""
		return
	}
	switch field {
	case FieldAge, FieldMealsPerDay, FieldWorkoutDaysPerWeek, FieldWorkoutDuration:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			p[field] = int(f)
			return
		}
		p[field] = raw
	case FieldHeight, FieldWeight, FieldTargetWeight:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			p[field] = f
			return
		}
		p[field] = raw
	case FieldDietType:
		p[field] = NormalizeDietType(raw)
	default:
		p[field] = raw
	}
}

// MissingFields returns the unanswered fields of a step, in interview order.
// Optional fields count until they are explicitly skipped.
func (p Profile) MissingFields(step string) []string {
	var missing []string
	for _, name := range StepFields[step] {
		if !p.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// MissingRequired returns unanswered or skipped required fields of a step.
func (p Profile) MissingRequired(step string) []string {
	var missing []string
	for _, name := range StepFields[step] {
		if IsOptional(name) {
			continue
		}
		if p.Str(name) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// IsStepComplete reports whether every field of the step has been answered
// (required fields with a value, optional fields at least skipped).
func (p Profile) IsStepComplete(step string) bool {
	for _, name := range StepFields[step] {
		if !p.Has(name) {
			return false
		}
		if !IsOptional(name) && p.Str(name) == "" {
			return false
		}
	}
	return true
}

// IsComplete reports whether every step is complete.
func (p Profile) IsComplete() bool {
	for _, step := range Steps {
		if !p.IsStepComplete(step) {
			return false
		}
	}
	return true
}

// MissingForPlan returns the required fields a plan cannot be generated
// without. target_weight joins the list when the goal is not maintenance.
func (p Profile) MissingForPlan() []string {
	var missing []string
	for _, name := range AllRequiredFields() {
		if p.Str(name) == "" {
			missing = append(missing, name)
		}
	}
	if p.Str(FieldGoal) != GoalMaintenance && p.Str(FieldGoal) != "" && p.Str(FieldTargetWeight) == "" {
		missing = append(missing, FieldTargetWeight)
	}
	return missing
}

// NormalizeDietType maps free-form diet answers to a canonical token.
// Priority matters: "non-veg" contains "veg", so the vegetarian branch
// requires the absence of "non".
func NormalizeDietType(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(v, "vegan"):
		return DietVegan
	case strings.Contains(v, "pescatarian"), strings.Contains(v, "pesca"):
		return DietPescatarian
	case strings.Contains(v, "veg") && !strings.Contains(v, "non"):
		return DietVeg
	case strings.Contains(v, "non"), strings.Contains(v, "meat"), strings.Contains(v, "chicken"):
		return DietNonVeg
	default:
		return v
	}
}
