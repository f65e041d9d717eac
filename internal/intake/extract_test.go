package intake

import (
	"testing"

	"github.com/fdg312/fitcoach/internal/profile"
)

func TestExtractNumberRangeGate(t *testing.T) {
	if _, ok := Extract(profile.FieldAge, "I am -5 years old"); ok {
		t.Fatal("out-of-range number must not be attributed to the field")
	}
	value, ok := Extract(profile.FieldAge, "I am 25")
	if !ok || value != "25" {
		t.Fatalf("Extract(age) = (%q, %v), want (25, true)", value, ok)
	}
	value, ok = Extract(profile.FieldWeight, "around 72.5 kg I think")
	if !ok || value != "72.5" {
		t.Fatalf("Extract(weight) = (%q, %v), want (72.5, true)", value, ok)
	}
	if _, ok := Extract(profile.FieldHeight, "pretty tall"); ok {
		t.Fatal("expected a miss when no number is present")
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		message string
		value   string
		ok      bool
	}{
		{"my name is Alex", "Alex", true},
		{"Call me Sam Lee", "Sam Lee", true},
		{"I'm Priya", "Priya", true},
		{"Jordan Taylor Smith Junior", "Jordan Taylor Smith", true},
		{"no", "", false},
		{"yes", "", false},
		{"12345", "", false},
	}
	for _, tt := range tests {
		value, ok := Extract(profile.FieldName, tt.message)
		if ok != tt.ok || value != tt.value {
			t.Errorf("Extract(name, %q) = (%q, %v), want (%q, %v)", tt.message, value, ok, tt.value, tt.ok)
		}
	}
}

func TestExtractDietTypePriority(t *testing.T) {
	tests := []struct {
		message string
		value   string
	}{
		{"I'm vegan", profile.DietVegan},
		{"pescatarian mostly", profile.DietPescatarian},
		{"vegetarian", profile.DietVeg},
		{"non-veg", profile.DietNonVeg},
		{"I eat chicken", profile.DietNonVeg},
		{"vegan vegetarian", profile.DietVegan},
	}
	for _, tt := range tests {
		value, ok := Extract(profile.FieldDietType, tt.message)
		if !ok || value != tt.value {
			t.Errorf("Extract(diet_type, %q) = (%q, %v), want %q", tt.message, value, ok, tt.value)
		}
	}
}

func TestExtractDietNormalizationIdempotent(t *testing.T) {
	for _, raw := range []string{"vegan", "vegetarian", "non-veg", "pescatarian", "meat"} {
		once := profile.NormalizeDietType(raw)
		twice := profile.NormalizeDietType(once)
		if once != twice {
			t.Errorf("NormalizeDietType not idempotent for %q: %q then %q", raw, once, twice)
		}
	}
}

func TestExtractGenderOrder(t *testing.T) {
	value, ok := Extract(profile.FieldGender, "female")
	if !ok || value != profile.GenderFemale {
		t.Fatalf("Extract(gender, female) = (%q, %v)", value, ok)
	}
	value, ok = Extract(profile.FieldGender, "I am a man")
	if !ok || value != profile.GenderMale {
		t.Fatalf("Extract(gender, man) = (%q, %v)", value, ok)
	}
}

func TestExtractActivitySedentaryBeforeActive(t *testing.T) {
	value, ok := Extract(profile.FieldActivityLevel, "not active at all")
	if !ok || value != profile.ActivitySedentary {
		t.Fatalf("Extract(activity, not active) = (%q, %v), want sedentary", value, ok)
	}
	value, ok = Extract(profile.FieldActivityLevel, "pretty active")
	if !ok || value != profile.ActivityActive {
		t.Fatalf("Extract(activity, active) = (%q, %v)", value, ok)
	}
}

func TestExtractCrossFieldDisambiguation(t *testing.T) {
	if _, ok := Extract(profile.FieldFoodAllergies, "I'm vegetarian"); ok {
		t.Error("diet vocabulary must not be captured as an allergy")
	}
	if _, ok := Extract(profile.FieldMedicalConditions, "vegan"); ok {
		t.Error("diet vocabulary must not be captured as a condition")
	}
	if _, ok := Extract(profile.FieldWorkHours, "I cook at home"); ok {
		t.Error("cooking vocabulary must not be captured as work hours")
	}
	if _, ok := Extract(profile.FieldCookingHabits, "9-17"); ok {
		t.Error("work-hours shaped text must not be captured as cooking habits")
	}
	value, ok := Extract(profile.FieldFoodAllergies, "peanuts and shellfish")
	if !ok || value != "peanuts and shellfish" {
		t.Errorf("Extract(food_allergies) = (%q, %v)", value, ok)
	}
}

func TestExtractTime(t *testing.T) {
	tests := []struct {
		message string
		value   string
		ok      bool
	}{
		{"07:00", "07:00", true},
		{"I wake at 6:30", "06:30", true},
		{"7 am", "07:00", true},
		{"11 pm", "23:00", true},
		{"12 am", "00:00", true},
		{"12 pm", "12:00", true},
		{"early", "", false},
		{"25:00", "", false},
	}
	for _, tt := range tests {
		value, ok := Extract(profile.FieldWakeTime, tt.message)
		if ok != tt.ok || value != tt.value {
			t.Errorf("Extract(wake_time, %q) = (%q, %v), want (%q, %v)", tt.message, value, ok, tt.value, tt.ok)
		}
	}
}

func TestExtractCookingHabits(t *testing.T) {
	tests := []struct {
		message string
		value   string
	}{
		{"mostly home cooked", profile.CookingHomeCooked},
		{"a mix of both", profile.CookingMixed},
		{"I order outside food", profile.CookingOutside},
	}
	for _, tt := range tests {
		value, ok := Extract(profile.FieldCookingHabits, tt.message)
		if !ok || value != tt.value {
			t.Errorf("Extract(cooking_habits, %q) = (%q, %v), want %q", tt.message, value, ok, tt.value)
		}
	}
}

func TestIsRefusal(t *testing.T) {
	for _, m := range []string{"no", "None", "nothing", "skip", "I don't have any"} {
		if !IsRefusal(m) {
			t.Errorf("IsRefusal(%q) = false", m)
		}
	}
	if IsRefusal("peanuts") {
		t.Error("IsRefusal(peanuts) = true")
	}
}
