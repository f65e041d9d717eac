package profile

import "strings"

// Шаги интервью в фиксированном порядке
const (
	StepPersonalDetails   = "personal_details"
	StepGoalPlanning      = "goal_planning"
	StepHealthConstraints = "health_constraints"
	StepEatingLifestyle   = "eating_lifestyle"
	StepWorkoutInfo       = "workout_info"
)

// Steps — порядок шагов интервью
var Steps = []string{
	StepPersonalDetails,
	StepGoalPlanning,
	StepHealthConstraints,
	StepEatingLifestyle,
	StepWorkoutInfo,
}

// Field names collected during the interview.
const (
	FieldName               = "name"
	FieldAge                = "age"
	FieldGender             = "gender"
	FieldHeight             = "height"
	FieldWeight             = "weight"
	FieldGoal               = "goal"
	FieldTargetWeight       = "target_weight"
	FieldMedicalConditions  = "medical_conditions"
	FieldFoodAllergies      = "food_allergies"
	FieldDietType           = "diet_type"
	FieldDislikedFoods      = "disliked_foods"
	FieldMealsPerDay        = "meals_per_day"
	FieldCookingHabits      = "cooking_habits"
	FieldWakeTime           = "wake_time"
	FieldSleepTime          = "sleep_time"
	FieldWorkHours          = "work_hours"
	FieldActivityLevel      = "activity_level"
	FieldWorkoutExperience  = "workout_experience"
	FieldWorkoutDaysPerWeek = "workout_days_per_week"
	FieldWorkoutDuration    = "workout_duration"
)

type FieldKind string

const (
	KindNumber FieldKind = "number"
	KindChoice FieldKind = "choice"
	KindTime   FieldKind = "time"
	KindText   FieldKind = "text"
)

// FieldDef describes a single interview field: its type, numeric range and
// whether the flow may complete without it.
type FieldDef struct {
	Name     string
	Kind     FieldKind
	Min      float64
	Max      float64
	Integer  bool
	Optional bool
	Unit     string // appended to range error messages ("cm", "kg", "minutes")
}

// StepFields — поля каждого шага в порядке опроса
var StepFields = map[string][]string{
	StepPersonalDetails:   {FieldName, FieldAge, FieldGender, FieldHeight, FieldWeight},
	StepGoalPlanning:      {FieldGoal, FieldTargetWeight},
	StepHealthConstraints: {FieldMedicalConditions, FieldFoodAllergies, FieldDietType, FieldDislikedFoods},
	StepEatingLifestyle:   {FieldMealsPerDay, FieldCookingHabits, FieldWakeTime, FieldSleepTime, FieldWorkHours, FieldActivityLevel},
	StepWorkoutInfo:       {FieldWorkoutExperience, FieldWorkoutDaysPerWeek, FieldWorkoutDuration},
}

// Fields — реестр всех полей. Read-only после инициализации.
var Fields = map[string]FieldDef{
	FieldName:               {Name: FieldName, Kind: KindText},
	FieldAge:                {Name: FieldAge, Kind: KindNumber, Min: 13, Max: 100, Integer: true},
	FieldGender:             {Name: FieldGender, Kind: KindChoice},
	FieldHeight:             {Name: FieldHeight, Kind: KindNumber, Min: 100, Max: 250, Unit: "cm"},
	FieldWeight:             {Name: FieldWeight, Kind: KindNumber, Min: 30, Max: 300, Unit: "kg"},
	FieldGoal:               {Name: FieldGoal, Kind: KindChoice},
	FieldTargetWeight:       {Name: FieldTargetWeight, Kind: KindNumber, Min: 30, Max: 300, Unit: "kg", Optional: true},
	FieldMedicalConditions:  {Name: FieldMedicalConditions, Kind: KindText, Optional: true},
	FieldFoodAllergies:      {Name: FieldFoodAllergies, Kind: KindText, Optional: true},
	FieldDietType:           {Name: FieldDietType, Kind: KindChoice},
	FieldDislikedFoods:      {Name: FieldDislikedFoods, Kind: KindText, Optional: true},
	FieldMealsPerDay:        {Name: FieldMealsPerDay, Kind: KindNumber, Min: 2, Max: 6, Integer: true},
	FieldCookingHabits:      {Name: FieldCookingHabits, Kind: KindChoice},
	FieldWakeTime:           {Name: FieldWakeTime, Kind: KindTime},
	FieldSleepTime:          {Name: FieldSleepTime, Kind: KindTime},
	FieldWorkHours:          {Name: FieldWorkHours, Kind: KindText},
	FieldActivityLevel:      {Name: FieldActivityLevel, Kind: KindChoice},
	FieldWorkoutExperience:  {Name: FieldWorkoutExperience, Kind: KindChoice},
	FieldWorkoutDaysPerWeek: {Name: FieldWorkoutDaysPerWeek, Kind: KindNumber, Min: 1, Max: 7, Integer: true},
	FieldWorkoutDuration:    {Name: FieldWorkoutDuration, Kind: KindNumber, Min: 15, Max: 180, Integer: true, Unit: "minutes"},
}

// Lookup returns the definition of a field by name.
func Lookup(name string) (FieldDef, bool) {
	def, ok := Fields[name]
	return def, ok
}

// IsOptional reports whether the field may stay unanswered.
func IsOptional(name string) bool {
	def, ok := Fields[name]
	return ok && def.Optional
}

// IsNumeric reports whether the field expects a positive number.
func IsNumeric(name string) bool {
	def, ok := Fields[name]
	return ok && def.Kind == KindNumber
}

// Label returns the human readable name of a field ("workout_duration" -> "workout duration").
func Label(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// NextStep returns the step following current, or "" when current is the last
// one. Unknown steps restart the flow from the first step.
func NextStep(current string) string {
	for i, step := range Steps {
		if step == current {
			if i < len(Steps)-1 {
				return Steps[i+1]
			}
			return ""
		}
	}
	return Steps[0]
}

// AllRequiredFields returns every required field across all steps, in interview order.
func AllRequiredFields() []string {
	fields := make([]string, 0, len(Fields))
	for _, step := range Steps {
		for _, name := range StepFields[step] {
			if !IsOptional(name) {
				fields = append(fields, name)
			}
		}
	}
	return fields
}
