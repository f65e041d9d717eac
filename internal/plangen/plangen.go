// Package plangen computes diet and workout plans from a completed profile.
// Generation is pure and deterministic: the same profile always yields the
// same plan, food rotation included.
package plangen

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/fdg312/fitcoach/internal/profile"
)

// ErrIncompleteProfile — генерация вызвана до завершения интервью
var ErrIncompleteProfile = errors.New("profile is incomplete")

// Weekdays — дни недели в порядке плана
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type DailyTargets struct {
	CaloriesKcal int     `json:"calories_kcal"`
	ProteinG     float64 `json:"protein_g"`
	CarbsG       float64 `json:"carbs_g"`
	FatsG        float64 `json:"fats_g"`
}

type Meal struct {
	MealType     string `json:"meal_type"`
	Food         string `json:"food"`
	CaloriesKcal int    `json:"calories_kcal"`
}

type MealDay struct {
	Meals         []Meal `json:"meals"`
	TotalCalories int    `json:"total_calories"`
}

type MealPlan struct {
	Week         map[string]MealDay `json:"week"`
	DailyTargets DailyTargets       `json:"daily_targets"`
}

type WorkoutDay struct {
	Type            string   `json:"type"`
	Exercises       []string `json:"exercises"`
	DurationMinutes int      `json:"duration_minutes"`
	Intensity       string   `json:"intensity"`
}

type WorkoutPlan struct {
	Week             map[string]WorkoutDay `json:"week"`
	RecoveryGuidance string                `json:"recovery_guidance"`
	TotalWorkoutDays int                   `json:"total_workout_days"`
	SessionDuration  int                   `json:"session_duration"`
}

// PickFunc selects the food index for a weekday and meal slot out of n
// options. It must be deterministic: the plan is recomputable at any time.
type PickFunc func(dayIndex int, slot string, n int) int

// DefaultPick rotates through the options with a stable hash of day and slot.
func DefaultPick(dayIndex int, slot string, n int) int {
	if n <= 0 {
		return 0
	}
	h := fnv.New32a()
	fmt.Fprintf(h, "%d:%s", dayIndex, slot)
	return int(h.Sum32() % uint32(n))
}

// Generator produces plans. The zero value is not usable; use New.
type Generator struct {
	pick PickFunc
}

// New returns a generator with the default selection policy.
func New() *Generator {
	return &Generator{pick: DefaultPick}
}

// NewWithPick returns a generator with a custom selection policy.
func NewWithPick(pick PickFunc) *Generator {
	if pick == nil {
		pick = DefaultPick
	}
	return &Generator{pick: pick}
}

// Generate computes daily targets, the weekly meal plan and the weekly
// workout plan. An incomplete profile is a caller bug and fails loudly.
func (g *Generator) Generate(p profile.Profile) (DailyTargets, MealPlan, WorkoutPlan, error) {
	if missing := p.MissingForPlan(); len(missing) > 0 {
		return DailyTargets{}, MealPlan{}, WorkoutPlan{},
			fmt.Errorf("%w: missing %s", ErrIncompleteProfile, strings.Join(missing, ", "))
	}

	targets := Targets(p)
	meals := g.mealPlan(p, targets)
	workouts := g.workoutPlan(p)
	return targets, meals, workouts, nil
}
