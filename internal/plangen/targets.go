package plangen

import (
	"math"

	"github.com/fdg312/fitcoach/internal/profile"
)

// Множители активности для TDEE
var activityMultipliers = map[string]float64{
	profile.ActivitySedentary: 1.2,
	profile.ActivityModerate:  1.55,
	profile.ActivityActive:    1.725,
}

// Корректировка калорий по цели
var goalAdjustments = map[string]float64{
	profile.GoalFatLoss:     -500,
	profile.GoalMuscleGain:  300,
	profile.GoalMaintenance: 0,
}

// Доли протеин/углеводы/жиры от дневных калорий по цели
var macroRatios = map[string][3]float64{
	profile.GoalFatLoss:     {0.35, 0.35, 0.30},
	profile.GoalMuscleGain:  {0.30, 0.45, 0.25},
	profile.GoalMaintenance: {0.30, 0.40, 0.30},
}

const calorieFloor = 1200

// CalculateBMR — формула Миффлина-Сан Жеора
func CalculateBMR(weightKg, heightCm, age float64, gender string) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*age
	if gender == profile.GenderMale {
		return bmr + 5
	}
	return bmr - 161
}

// CalculateTDEE scales BMR by the activity multiplier. Unknown levels fall
// back to sedentary.
func CalculateTDEE(bmr float64, activityLevel string) float64 {
	mult, ok := activityMultipliers[activityLevel]
	if !ok {
		mult = activityMultipliers[profile.ActivitySedentary]
	}
	return bmr * mult
}

// TargetCalories applies the goal adjustment with the 1200 kcal floor.
func TargetCalories(tdee float64, goal string) float64 {
	return math.Max(tdee+goalAdjustments[goal], calorieFloor)
}

// Targets computes the daily calorie and macro targets for a profile.
// Calories round half-to-even to an integer, grams to one decimal.
func Targets(p profile.Profile) DailyTargets {
	bmr := CalculateBMR(p.Float(profile.FieldWeight), p.Float(profile.FieldHeight), p.Float(profile.FieldAge), p.Str(profile.FieldGender))
	tdee := CalculateTDEE(bmr, p.Str(profile.FieldActivityLevel))
	calories := TargetCalories(tdee, p.Str(profile.FieldGoal))

	ratios, ok := macroRatios[p.Str(profile.FieldGoal)]
	if !ok {
		ratios = macroRatios[profile.GoalMaintenance]
	}
	return DailyTargets{
		CaloriesKcal: int(math.RoundToEven(calories)),
		ProteinG:     round1(calories * ratios[0] / 4),
		CarbsG:       round1(calories * ratios[1] / 4),
		FatsG:        round1(calories * ratios[2] / 9),
	}
}

func round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
