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

type PostgresPlansStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresPlansStorage(pool *pgxpool.Pool) *PostgresPlansStorage {
	return &PostgresPlansStorage{pool: pool}
}

func (s *PostgresPlansStorage) CreatePlan(ctx context.Context, plan *storage.Plan) error {
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	plan.CreatedAt = time.Now().UTC()

	const query = `
		INSERT INTO plans (id, user_id, diet_plan, workout_plan, explanation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.pool.Exec(ctx, query,
		plan.ID,
		plan.UserID,
		plan.DietPlan,
		plan.WorkoutPlan,
		plan.Explanation,
		plan.CreatedAt,
	)
	return err
}

func (s *PostgresPlansStorage) GetPlan(ctx context.Context, id uuid.UUID) (*storage.Plan, error) {
	const query = `
		SELECT id, user_id, diet_plan, workout_plan, explanation, created_at
		FROM plans
		WHERE id = $1
	`
	return s.scanPlan(s.pool.QueryRow(ctx, query, id))
}

func (s *PostgresPlansStorage) GetLatestPlanForUser(ctx context.Context, userID uuid.UUID) (*storage.Plan, error) {
	const query = `
		SELECT id, user_id, diet_plan, workout_plan, explanation, created_at
		FROM plans
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	return s.scanPlan(s.pool.QueryRow(ctx, query, userID))
}

func (s *PostgresPlansStorage) scanPlan(row pgx.Row) (*storage.Plan, error) {
	var plan storage.Plan
	err := row.Scan(
		&plan.ID,
		&plan.UserID,
		&plan.DietPlan,
		&plan.WorkoutPlan,
		&plan.Explanation,
		&plan.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}
