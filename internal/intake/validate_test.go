package intake

import (
	"strings"
	"testing"

	"github.com/fdg312/fitcoach/internal/profile"
)

func TestValidateNumericMessages(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		raw     string
		ok      bool
		message string
	}{
		{"negative age", profile.FieldAge, "-5", false, "Please enter a positive number for age. Negative values are not allowed. The value must be greater than 0."},
		{"zero weight", profile.FieldWeight, "0", false, "Please enter a positive number for weight. Zero and negative values are not allowed. The value must be greater than 0."},
		{"not a number", profile.FieldHeight, "tall", false, "Please enter a valid number for height."},
		{"age below range", profile.FieldAge, "12", false, "Age must be between 13 and 100."},
		{"age above range", profile.FieldAge, "101", false, "Age must be between 13 and 100."},
		{"height out of range", profile.FieldHeight, "90", false, "Height must be between 100 and 250 cm."},
		{"weight out of range", profile.FieldWeight, "301", false, "Weight must be between 30 and 300 kg."},
		{"target weight out of range", profile.FieldTargetWeight, "20", false, "Target weight must be between 30 and 300 kg."},
		{"meals out of range", profile.FieldMealsPerDay, "1", false, "Meals per day must be between 2 and 6."},
		{"days out of range", profile.FieldWorkoutDaysPerWeek, "8", false, "Workout days per week must be between 1 and 7."},
		{"duration out of range", profile.FieldWorkoutDuration, "10", false, "Workout duration must be between 15 and 180 minutes."},
		{"valid age", profile.FieldAge, "25", true, ""},
		{"valid decimal weight", profile.FieldWeight, "72.5", true, ""},
		{"valid duration", profile.FieldWorkoutDuration, "45", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := Validate(tt.field, tt.raw)
			if ok != tt.ok {
				t.Fatalf("Validate(%s, %q) ok=%v, want %v (msg=%q)", tt.field, tt.raw, ok, tt.ok, msg)
			}
			if msg != tt.message {
				t.Errorf("Validate(%s, %q) message=%q, want %q", tt.field, tt.raw, msg, tt.message)
			}
		})
	}
}

func TestValidateNonPositiveAndNonNumericAreDistinct(t *testing.T) {
	_, negMsg := Validate(profile.FieldAge, "0")
	_, nanMsg := Validate(profile.FieldAge, "abc")
	if negMsg == nanMsg {
		t.Fatalf("expected distinct messages, got %q twice", negMsg)
	}
	if !strings.Contains(negMsg, "positive number") {
		t.Errorf("non-positive message = %q", negMsg)
	}
	if !strings.Contains(nanMsg, "valid number") {
		t.Errorf("not-a-number message = %q", nanMsg)
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		raw     string
		ok      bool
		message string
	}{
		{"Alex", true, ""},
		{"J R", true, ""},
		{"a", false, "Please provide your name. If you prefer not to share, you can use a nickname or initials."},
		{"no", false, "That doesn't look like a name. Please provide your name or a nickname."},
		{"skip", false, "That doesn't look like a name. Please provide your name or a nickname."},
		{"12345", false, "Please provide a name, not just numbers."},
	}
	for _, tt := range tests {
		ok, msg := Validate(profile.FieldName, tt.raw)
		if ok != tt.ok || msg != tt.message {
			t.Errorf("Validate(name, %q) = (%v, %q), want (%v, %q)", tt.raw, ok, msg, tt.ok, tt.message)
		}
	}
}

func TestValidateDietType(t *testing.T) {
	accepted := []string{"veg", "vegetarian", "non_veg", "non-veg", "vegan", "pescatarian", "I eat meat"}
	for _, raw := range accepted {
		if ok, msg := Validate(profile.FieldDietType, raw); !ok {
			t.Errorf("Validate(diet_type, %q) rejected: %s", raw, msg)
		}
	}
	ok, msg := Validate(profile.FieldDietType, "keto")
	if ok {
		t.Fatal("expected keto to be rejected")
	}
	want := "Please specify a valid diet type: vegetarian, non-vegetarian, vegan, or pescatarian."
	if msg != want {
		t.Errorf("diet rejection message = %q, want %q", msg, want)
	}
}

func TestValidateOptionalEmptyPasses(t *testing.T) {
	for _, field := range []string{profile.FieldMedicalConditions, profile.FieldFoodAllergies, profile.FieldDislikedFoods, profile.FieldTargetWeight} {
		if ok, msg := Validate(field, ""); !ok {
			t.Errorf("Validate(%s, empty) rejected: %s", field, msg)
		}
	}
}

func TestValidateRequiredEmptyFails(t *testing.T) {
	ok, msg := Validate(profile.FieldGoal, "  ")
	if ok {
		t.Fatal("expected empty required field to fail")
	}
	if msg != "Goal is required." {
		t.Errorf("message = %q", msg)
	}
}

func TestValidateTime(t *testing.T) {
	if ok, _ := Validate(profile.FieldWakeTime, "07:00"); !ok {
		t.Error("expected 07:00 to pass")
	}
	if ok, _ := Validate(profile.FieldWakeTime, "25:00"); ok {
		t.Error("expected 25:00 to fail")
	}
	if ok, _ := Validate(profile.FieldSleepTime, "late"); ok {
		t.Error("expected free text to fail for a time field")
	}
}
