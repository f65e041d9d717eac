package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/fdg312/fitcoach/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUsersStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresUsersStorage(pool *pgxpool.Pool) *PostgresUsersStorage {
	return &PostgresUsersStorage{pool: pool}
}

func (s *PostgresUsersStorage) CreateUser(ctx context.Context, user *storage.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now().UTC()

	const query = `
		INSERT INTO users (
			id, name, age, gender, height_cm, weight_kg, goal, target_weight_kg,
			medical_conditions, food_allergies, diet_type, disliked_foods,
			meals_per_day, cooking_habits, wake_time, sleep_time, work_hours,
			activity_level, workout_experience, workout_days_per_week, workout_duration,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`

	_, err := s.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Age,
		user.Gender,
		user.HeightCm,
		user.WeightKg,
		user.Goal,
		user.TargetWeightKg,
		user.MedicalConditions,
		user.FoodAllergies,
		user.DietType,
		user.DislikedFoods,
		user.MealsPerDay,
		user.CookingHabits,
		user.WakeTime,
		user.SleepTime,
		user.WorkHours,
		user.ActivityLevel,
		user.WorkoutExperience,
		user.WorkoutDaysPerWeek,
		user.WorkoutDuration,
		user.CreatedAt,
	)
	return err
}

func (s *PostgresUsersStorage) GetUser(ctx context.Context, id uuid.UUID) (*storage.User, error) {
	const query = `
		SELECT id, name, age, gender, height_cm, weight_kg, goal, target_weight_kg,
			medical_conditions, food_allergies, diet_type, disliked_foods,
			meals_per_day, cooking_habits, wake_time, sleep_time, work_hours,
			activity_level, workout_experience, workout_days_per_week, workout_duration,
			created_at
		FROM users
		WHERE id = $1
	`

	var user storage.User
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Age,
		&user.Gender,
		&user.HeightCm,
		&user.WeightKg,
		&user.Goal,
		&user.TargetWeightKg,
		&user.MedicalConditions,
		&user.FoodAllergies,
		&user.DietType,
		&user.DislikedFoods,
		&user.MealsPerDay,
		&user.CookingHabits,
		&user.WakeTime,
		&user.SleepTime,
		&user.WorkHours,
		&user.ActivityLevel,
		&user.WorkoutExperience,
		&user.WorkoutDaysPerWeek,
		&user.WorkoutDuration,
		&user.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
