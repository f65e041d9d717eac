package plans

import (
	"encoding/json"
	"time"

	"github.com/fdg312/fitcoach/internal/storage"
	"github.com/google/uuid"
)

// CreateUserRequest — полный профиль одним документом, минуя интервью.
type CreateUserRequest struct {
	Name               string   `json:"name"`
	Age                int      `json:"age"`
	Gender             string   `json:"gender"`
	HeightCm           float64  `json:"height"`
	WeightKg           float64  `json:"weight"`
	Goal               string   `json:"goal"`
	TargetWeightKg     *float64 `json:"target_weight,omitempty"`
	MedicalConditions  string   `json:"medical_conditions"`
	FoodAllergies      string   `json:"food_allergies"`
	DietType           string   `json:"diet_type"`
	DislikedFoods      string   `json:"disliked_foods"`
	MealsPerDay        int      `json:"meals_per_day"`
	CookingHabits      string   `json:"cooking_habits"`
	WakeTime           string   `json:"wake_time"`
	SleepTime          string   `json:"sleep_time"`
	WorkHours          string   `json:"work_hours"`
	ActivityLevel      string   `json:"activity_level"`
	WorkoutExperience  string   `json:"workout_experience"`
	WorkoutDaysPerWeek int      `json:"workout_days_per_week"`
	WorkoutDuration    int      `json:"workout_duration"`
}

type UserResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Age                int       `json:"age"`
	Gender             string    `json:"gender"`
	HeightCm           float64   `json:"height"`
	WeightKg           float64   `json:"weight"`
	Goal               string    `json:"goal"`
	TargetWeightKg     *float64  `json:"target_weight,omitempty"`
	MedicalConditions  string    `json:"medical_conditions"`
	FoodAllergies      string    `json:"food_allergies"`
	DietType           string    `json:"diet_type"`
	DislikedFoods      string    `json:"disliked_foods"`
	MealsPerDay        int       `json:"meals_per_day"`
	CookingHabits      string    `json:"cooking_habits"`
	WakeTime           string    `json:"wake_time"`
	SleepTime          string    `json:"sleep_time"`
	WorkHours          string    `json:"work_hours"`
	ActivityLevel      string    `json:"activity_level"`
	WorkoutExperience  string    `json:"workout_experience"`
	WorkoutDaysPerWeek int       `json:"workout_days_per_week"`
	WorkoutDuration    int       `json:"workout_duration"`
	CreatedAt          time.Time `json:"created_at"`
}

type PlanDTO struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	DietPlan    json.RawMessage `json:"diet_plan"`
	WorkoutPlan json.RawMessage `json:"workout_plan"`
	Explanation string          `json:"explanation"`
	CreatedAt   time.Time       `json:"created_at"`
}

type CreateUserResponse struct {
	User UserResponse `json:"user"`
	Plan PlanDTO      `json:"plan"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func userToDTO(user *storage.User) UserResponse {
	return UserResponse{
		ID:                 user.ID,
		Name:               user.Name,
		Age:                user.Age,
		Gender:             user.Gender,
		HeightCm:           user.HeightCm,
		WeightKg:           user.WeightKg,
		Goal:               user.Goal,
		TargetWeightKg:     user.TargetWeightKg,
		MedicalConditions:  user.MedicalConditions,
		FoodAllergies:      user.FoodAllergies,
		DietType:           user.DietType,
		DislikedFoods:      user.DislikedFoods,
		MealsPerDay:        user.MealsPerDay,
		CookingHabits:      user.CookingHabits,
		WakeTime:           user.WakeTime,
		SleepTime:          user.SleepTime,
		WorkHours:          user.WorkHours,
		ActivityLevel:      user.ActivityLevel,
		WorkoutExperience:  user.WorkoutExperience,
		WorkoutDaysPerWeek: user.WorkoutDaysPerWeek,
		WorkoutDuration:    user.WorkoutDuration,
		CreatedAt:          user.CreatedAt,
	}
}

func planToDTO(plan *storage.Plan) PlanDTO {
	return PlanDTO{
		ID:          plan.ID,
		UserID:      plan.UserID,
		DietPlan:    plan.DietPlan,
		WorkoutPlan: plan.WorkoutPlan,
		Explanation: plan.Explanation,
		CreatedAt:   plan.CreatedAt,
	}
}
