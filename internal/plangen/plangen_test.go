package plangen

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/fdg312/fitcoach/internal/profile"
)

func completeProfile() profile.Profile {
	p := profile.New()
	values := map[string]string{
		profile.FieldName: "Alex", profile.FieldAge: "30", profile.FieldGender: "male",
		profile.FieldHeight: "175", profile.FieldWeight: "70",
		profile.FieldGoal: "fat_loss", profile.FieldTargetWeight: "65",
		profile.FieldMedicalConditions: "", profile.FieldFoodAllergies: "",
		profile.FieldDietType: "veg", profile.FieldDislikedFoods: "",
		profile.FieldMealsPerDay: "3", profile.FieldCookingHabits: "home_cooked",
		profile.FieldWakeTime: "07:00", profile.FieldSleepTime: "23:00",
		profile.FieldWorkHours: "9-17", profile.FieldActivityLevel: "moderate",
		profile.FieldWorkoutExperience: "beginner", profile.FieldWorkoutDaysPerWeek: "4",
		profile.FieldWorkoutDuration: "45",
	}
	for name, v := range values {
		p.Set(name, v)
	}
	return p
}

func TestTargetsReferenceScenario(t *testing.T) {
	// 70 kg, 175 cm, 30 y, male, moderate, fat_loss
	bmr := CalculateBMR(70, 175, 30, profile.GenderMale)
	if bmr != 1648.75 {
		t.Fatalf("BMR = %v, want 1648.75", bmr)
	}
	tdee := CalculateTDEE(bmr, profile.ActivityModerate)
	if tdee != 2555.5625 {
		t.Fatalf("TDEE = %v, want 2555.5625", tdee)
	}
	targets := Targets(completeProfile())
	if targets.CaloriesKcal != 2056 {
		t.Fatalf("calories = %d, want 2056", targets.CaloriesKcal)
	}
}

func TestTargetCaloriesFloor(t *testing.T) {
	if got := TargetCalories(1500, profile.GoalFatLoss); got != 1200 {
		t.Fatalf("floor not applied: %v", got)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := completeProfile()
	gen := New()
	t1, m1, w1, err := gen.Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	t2, m2, w2, err := gen.Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if t1 != t2 {
		t.Error("targets differ between runs")
	}
	if !reflect.DeepEqual(m1, m2) {
		t.Error("meal plans differ between runs")
	}
	if !reflect.DeepEqual(w1, w2) {
		t.Error("workout plans differ between runs")
	}
}

func TestGenerateIncompleteProfile(t *testing.T) {
	p := completeProfile()
	delete(p, profile.FieldWeight)
	_, _, _, err := New().Generate(p)
	if !errors.Is(err, ErrIncompleteProfile) {
		t.Fatalf("err = %v, want ErrIncompleteProfile", err)
	}
	if !strings.Contains(err.Error(), "weight") {
		t.Errorf("error should name the missing field: %v", err)
	}
}

func TestGenerateTargetWeightRequiredUnlessMaintenance(t *testing.T) {
	p := completeProfile()
	p.Set(profile.FieldTargetWeight, "")
	if _, _, _, err := New().Generate(p); !errors.Is(err, ErrIncompleteProfile) {
		t.Fatal("fat_loss without target_weight must fail")
	}
	p.Set(profile.FieldGoal, "maintenance")
	if _, _, _, err := New().Generate(p); err != nil {
		t.Fatalf("maintenance without target_weight must pass: %v", err)
	}
}

func TestSnackCountPerMealsPerDay(t *testing.T) {
	tests := []struct {
		meals  int
		snacks int
	}{
		{2, 0}, {3, 1}, {4, 2}, {5, 2}, {6, 2},
	}
	for _, tt := range tests {
		p := completeProfile()
		p[profile.FieldMealsPerDay] = tt.meals
		_, meals, _, err := New().Generate(p)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		for day, entry := range meals.Week {
			count := 0
			for _, m := range entry.Meals {
				if m.MealType == "Snack" {
					count++
				}
			}
			if count != tt.snacks {
				t.Errorf("meals_per_day=%d: %s has %d snacks, want %d", tt.meals, day, count, tt.snacks)
			}
		}
	}
}

func TestBeginnerSevenDaysAllFullBody(t *testing.T) {
	p := completeProfile()
	p[profile.FieldWorkoutDaysPerWeek] = 7
	_, _, workouts, err := New().Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for day, entry := range workouts.Week {
		if entry.Type != "Full Body" {
			t.Errorf("%s type = %q, want Full Body", day, entry.Type)
		}
		for _, label := range []string{"Push", "Pull", "Legs"} {
			if entry.Type == label {
				t.Errorf("%s uses %s label for a beginner", day, label)
			}
		}
	}
}

func TestWorkoutSplitSelection(t *testing.T) {
	tests := []struct {
		days int
		want []string
	}{
		{2, []string{"push", "pull"}},
		{3, []string{"push", "pull", "legs"}},
		{4, []string{"push", "pull", "legs", "push"}},
		{6, []string{"push", "pull", "legs", "push", "pull", "legs"}},
	}
	for _, tt := range tests {
		got := workoutSplit(profile.ExperienceIntermediate, tt.days)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("workoutSplit(intermediate, %d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestCardioAppendedForFatLossWhenNotActive(t *testing.T) {
	p := completeProfile()
	_, _, workouts, err := New().Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	monday := workouts.Week["Monday"]
	if monday.Exercises[len(monday.Exercises)-1] != "Walking" {
		t.Errorf("expected cardio appended, exercises = %v", monday.Exercises)
	}

	p.Set(profile.FieldActivityLevel, "active")
	_, _, workouts, err = New().Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	monday = workouts.Week["Monday"]
	if monday.Exercises[len(monday.Exercises)-1] == "Walking" {
		t.Error("cardio must not be appended for active users")
	}
}

func TestRestDaysPadTheWeek(t *testing.T) {
	p := completeProfile()
	_, _, workouts, err := New().Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	rest := 0
	for _, entry := range workouts.Week {
		if entry.Type == "Rest" {
			rest++
			if entry.DurationMinutes != 0 || entry.Intensity != "rest" {
				t.Errorf("rest day = %+v", entry)
			}
		}
	}
	if rest != 3 {
		t.Errorf("rest days = %d, want 3", rest)
	}
	if workouts.TotalWorkoutDays != 4 || workouts.SessionDuration != 45 {
		t.Errorf("summary = %d days / %d min", workouts.TotalWorkoutDays, workouts.SessionDuration)
	}
}

func TestFilterFoodsFallsBackWhenEverythingMatches(t *testing.T) {
	items := []string{"Oats with fruits", "Poha", "Upma"}
	got := filterFoods(items, "oats, poha, upma")
	if !reflect.DeepEqual(got, items) {
		t.Fatalf("expected fallback to the unfiltered list, got %v", got)
	}
	got = filterFoods(items, "oats")
	if len(got) != 2 || got[0] != "Poha" {
		t.Fatalf("filter result = %v", got)
	}
}

func TestMealPlanFiltersAllergies(t *testing.T) {
	p := completeProfile()
	p.Set(profile.FieldFoodAllergies, "paneer")
	_, meals, _, err := New().Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for day, entry := range meals.Week {
		for _, m := range entry.Meals {
			if strings.Contains(strings.ToLower(m.Food), "paneer") {
				t.Errorf("%s still serves %q despite the allergy", day, m.Food)
			}
		}
	}
}

func TestMealCalorieShares(t *testing.T) {
	p := completeProfile()
	targets, meals, _, err := New().Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	monday := meals.Week["Monday"]
	// 3 приёма + 1 перекус
	if len(monday.Meals) != 4 {
		t.Fatalf("monday has %d meals, want 4", len(monday.Meals))
	}
	total := 0
	for _, m := range monday.Meals {
		total += m.CaloriesKcal
	}
	if total != monday.TotalCalories {
		t.Errorf("day total %d != sum %d", monday.TotalCalories, total)
	}
	breakfast := monday.Meals[0]
	if breakfast.MealType != "Breakfast" {
		t.Fatalf("first meal = %q", breakfast.MealType)
	}
	want := int(float64(targets.CaloriesKcal)*0.25 + 0.5)
	if diff := breakfast.CaloriesKcal - want; diff < -1 || diff > 1 {
		t.Errorf("breakfast calories = %d, want ~%d", breakfast.CaloriesKcal, want)
	}
}

func TestUnknownDietFallsBackToVeg(t *testing.T) {
	p := completeProfile()
	p[profile.FieldDietType] = "pescatarian"
	_, meals, _, err := New().Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	vegBreakfasts := map[string]bool{}
	for _, f := range foodDatabase[profile.DietVeg]["breakfast"] {
		vegBreakfasts[f] = true
	}
	monday := meals.Week["Monday"]
	if !vegBreakfasts[monday.Meals[0].Food] {
		t.Errorf("pescatarian breakfast %q not from the veg table", monday.Meals[0].Food)
	}
}
