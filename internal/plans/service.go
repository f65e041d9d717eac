package plans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/fdg312/fitcoach/internal/ai"
	"github.com/fdg312/fitcoach/internal/intake"
	"github.com/fdg312/fitcoach/internal/plangen"
	"github.com/fdg312/fitcoach/internal/profile"
	"github.com/fdg312/fitcoach/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrPlanNotFound = errors.New("plan not found")
)

// ValidationError указывает на конкретное отвергнутое поле профиля.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Service создаёт пользователей из готового профиля (без интервью) и отдаёт
// сохранённые планы.
type Service struct {
	storage   storage.Storage
	provider  ai.Provider
	generator *plangen.Generator
}

func NewService(store storage.Storage, provider ai.Provider, generator *plangen.Generator) *Service {
	return &Service{
		storage:   store,
		provider:  provider,
		generator: generator,
	}
}

// CreateUser прогоняет каждый присланный ответ через тот же валидатор, что и
// интервью, затем генерирует и сохраняет план.
func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*CreateUserResponse, error) {
	p := profile.New()
	for _, step := range profile.Steps {
		for _, field := range profile.StepFields[step] {
			raw := rawFieldValue(req, field)
			if profile.IsOptional(field) && strings.TrimSpace(raw) == "" {
				p.Set(field, "")
				continue
			}
			if ok, msg := intake.Validate(field, raw); !ok {
				return nil, &ValidationError{Field: field, Message: msg}
			}
			p.Set(field, raw)
		}
	}

	if err := checkTargetWeight(p); err != nil {
		return nil, err
	}

	// DailyTargets входят в состав meal plan, отдельно не сохраняются
	_, mealPlan, workoutPlan, err := s.generator.Generate(p)
	if err != nil {
		return nil, err
	}

	user := buildUser(p)
	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	dietJSON, err := json.Marshal(mealPlan)
	if err != nil {
		return nil, err
	}
	workoutJSON, err := json.Marshal(workoutPlan)
	if err != nil {
		return nil, err
	}

	explanation, err := s.provider.ExplainPlan(ctx, ai.ExplainRequest{
		UserName:          user.Name,
		Goal:              user.Goal,
		DietType:          user.DietType,
		WorkoutExperience: user.WorkoutExperience,
		DietPlan:          dietJSON,
		WorkoutPlan:       workoutJSON,
	})
	if err != nil || strings.TrimSpace(explanation) == "" {
		if err != nil {
			log.Printf("WARNING: plan explanation failed, using fallback: %v", err)
		}
		explanation = ai.FallbackExplanation(user.Goal, user.DietType, user.WorkoutExperience)
	}

	plan := &storage.Plan{
		UserID:      user.ID,
		DietPlan:    dietJSON,
		WorkoutPlan: workoutJSON,
		Explanation: explanation,
	}
	if err := s.storage.CreatePlan(ctx, plan); err != nil {
		return nil, err
	}

	return &CreateUserResponse{
		User: userToDTO(user),
		Plan: planToDTO(plan),
	}, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.storage.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	dto := userToDTO(user)
	return &dto, nil
}

func (s *Service) GetLatestPlan(ctx context.Context, userID uuid.UUID) (*PlanDTO, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	plan, err := s.storage.GetLatestPlanForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	dto := planToDTO(plan)
	return &dto, nil
}

// checkTargetWeight — проверка согласованности цели и целевого веса.
func checkTargetWeight(p profile.Profile) error {
	goal := p.Str(profile.FieldGoal)
	if goal == profile.GoalMaintenance {
		return nil
	}
	if p.Str(profile.FieldTargetWeight) == "" {
		return &ValidationError{
			Field:   profile.FieldTargetWeight,
			Message: "Target weight is required for your goal.",
		}
	}
	target := p.Float(profile.FieldTargetWeight)
	weight := p.Float(profile.FieldWeight)
	if goal == profile.GoalFatLoss && target >= weight {
		return &ValidationError{
			Field:   profile.FieldTargetWeight,
			Message: "Target weight must be less than your current weight for fat loss.",
		}
	}
	if goal == profile.GoalMuscleGain && target <= weight {
		return &ValidationError{
			Field:   profile.FieldTargetWeight,
			Message: "Target weight must be greater than your current weight for muscle gain.",
		}
	}
	return nil
}

// rawFieldValue переводит поле запроса в строку для общего валидатора.
func rawFieldValue(req CreateUserRequest, field string) string {
	switch field {
	case profile.FieldName:
		return strings.TrimSpace(req.Name)
	case profile.FieldAge:
		return strconv.Itoa(req.Age)
	case profile.FieldGender:
		return canonicalChoice(req.Gender)
	case profile.FieldHeight:
		return formatFloat(req.HeightCm)
	case profile.FieldWeight:
		return formatFloat(req.WeightKg)
	case profile.FieldGoal:
		return canonicalChoice(req.Goal)
	case profile.FieldTargetWeight:
		if req.TargetWeightKg == nil {
			return ""
		}
		return formatFloat(*req.TargetWeightKg)
	case profile.FieldMedicalConditions:
		return strings.TrimSpace(req.MedicalConditions)
	case profile.FieldFoodAllergies:
		return strings.TrimSpace(req.FoodAllergies)
	case profile.FieldDietType:
		return strings.TrimSpace(req.DietType)
	case profile.FieldDislikedFoods:
		return strings.TrimSpace(req.DislikedFoods)
	case profile.FieldMealsPerDay:
		return strconv.Itoa(req.MealsPerDay)
	case profile.FieldCookingHabits:
		return canonicalChoice(req.CookingHabits)
	case profile.FieldWakeTime:
		return strings.TrimSpace(req.WakeTime)
	case profile.FieldSleepTime:
		return strings.TrimSpace(req.SleepTime)
	case profile.FieldWorkHours:
		return strings.TrimSpace(req.WorkHours)
	case profile.FieldActivityLevel:
		return canonicalChoice(req.ActivityLevel)
	case profile.FieldWorkoutExperience:
		return canonicalChoice(req.WorkoutExperience)
	case profile.FieldWorkoutDaysPerWeek:
		return strconv.Itoa(req.WorkoutDaysPerWeek)
	case profile.FieldWorkoutDuration:
		return strconv.Itoa(req.WorkoutDuration)
	default:
		return ""
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// canonicalChoice приводит "fat loss" к "fat_loss" и т.п.
func canonicalChoice(raw string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "_")
}

func buildUser(p profile.Profile) *storage.User {
	user := &storage.User{
		Name:               p.Str(profile.FieldName),
		Age:                p.Int(profile.FieldAge),
		Gender:             p.Str(profile.FieldGender),
		HeightCm:           p.Float(profile.FieldHeight),
		WeightKg:           p.Float(profile.FieldWeight),
		Goal:               p.Str(profile.FieldGoal),
		MedicalConditions:  p.Str(profile.FieldMedicalConditions),
		FoodAllergies:      p.Str(profile.FieldFoodAllergies),
		DietType:           p.Str(profile.FieldDietType),
		DislikedFoods:      p.Str(profile.FieldDislikedFoods),
		MealsPerDay:        p.Int(profile.FieldMealsPerDay),
		CookingHabits:      p.Str(profile.FieldCookingHabits),
		WakeTime:           p.Str(profile.FieldWakeTime),
		SleepTime:          p.Str(profile.FieldSleepTime),
		WorkHours:          p.Str(profile.FieldWorkHours),
		ActivityLevel:      p.Str(profile.FieldActivityLevel),
		WorkoutExperience:  p.Str(profile.FieldWorkoutExperience),
		WorkoutDaysPerWeek: p.Int(profile.FieldWorkoutDaysPerWeek),
		WorkoutDuration:    p.Int(profile.FieldWorkoutDuration),
	}
	if p.Str(profile.FieldTargetWeight) != "" {
		target := p.Float(profile.FieldTargetWeight)
		user.TargetWeightKg = &target
	}
	return user
}
