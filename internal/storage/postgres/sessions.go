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

type PostgresSessionsStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresSessionsStorage(pool *pgxpool.Pool) *PostgresSessionsStorage {
	return &PostgresSessionsStorage{pool: pool}
}

func (s *PostgresSessionsStorage) CreateSession(ctx context.Context, session *storage.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	const query = `
		INSERT INTO sessions (id, owner_user_id, current_step, collected, is_complete, user_id, plan_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.pool.Exec(ctx, query,
		session.ID,
		session.OwnerUserID,
		session.CurrentStep,
		session.Collected,
		session.IsComplete,
		session.UserID,
		session.PlanID,
		session.CreatedAt,
		session.UpdatedAt,
	)
	return err
}

func (s *PostgresSessionsStorage) GetSession(ctx context.Context, id uuid.UUID) (*storage.Session, error) {
	const query = `
		SELECT id, owner_user_id, current_step, collected, is_complete, user_id, plan_id, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`

	var session storage.Session
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.OwnerUserID,
		&session.CurrentStep,
		&session.Collected,
		&session.IsComplete,
		&session.UserID,
		&session.PlanID,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *PostgresSessionsStorage) UpdateSession(ctx context.Context, session *storage.Session) error {
	session.UpdatedAt = time.Now().UTC()

	const query = `
		UPDATE sessions
		SET current_step = $2, collected = $3, is_complete = $4, user_id = $5, plan_id = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := s.pool.Exec(ctx, query,
		session.ID,
		session.CurrentStep,
		session.Collected,
		session.IsComplete,
		session.UserID,
		session.PlanID,
		session.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
