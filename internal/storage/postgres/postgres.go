package postgres

import (
	"context"

	"github.com/fdg312/fitcoach/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage — Postgres реализация storage.Storage
type PostgresStorage struct {
	pool     *pgxpool.Pool
	sessions *PostgresSessionsStorage
	users    *PostgresUsersStorage
	plans    *PostgresPlansStorage
	messages *PostgresMessagesStorage
}

// New создаёт PostgresStorage и проверяет соединение
func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &PostgresStorage{
		pool:     pool,
		sessions: NewPostgresSessionsStorage(pool),
		users:    NewPostgresUsersStorage(pool),
		plans:    NewPostgresPlansStorage(pool),
		messages: NewPostgresMessagesStorage(pool),
	}, nil
}

func (p *PostgresStorage) Close() {
	p.pool.Close()
}

// GetSessionsStorage returns the sessions storage.
func (p *PostgresStorage) GetSessionsStorage() *PostgresSessionsStorage {
	return p.sessions
}

// GetUsersStorage returns the users storage.
func (p *PostgresStorage) GetUsersStorage() *PostgresUsersStorage {
	return p.users
}

// GetPlansStorage returns the plans storage.
func (p *PostgresStorage) GetPlansStorage() *PostgresPlansStorage {
	return p.plans
}

// GetMessagesStorage returns the conversation messages storage.
func (p *PostgresStorage) GetMessagesStorage() *PostgresMessagesStorage {
	return p.messages
}

// SessionsStorage methods - делегируем к встроенному sessions storage

func (p *PostgresStorage) CreateSession(ctx context.Context, session *storage.Session) error {
	return p.sessions.CreateSession(ctx, session)
}

func (p *PostgresStorage) GetSession(ctx context.Context, id uuid.UUID) (*storage.Session, error) {
	return p.sessions.GetSession(ctx, id)
}

func (p *PostgresStorage) UpdateSession(ctx context.Context, session *storage.Session) error {
	return p.sessions.UpdateSession(ctx, session)
}

// UsersStorage methods - делегируем к встроенному users storage

func (p *PostgresStorage) CreateUser(ctx context.Context, user *storage.User) error {
	return p.users.CreateUser(ctx, user)
}

func (p *PostgresStorage) GetUser(ctx context.Context, id uuid.UUID) (*storage.User, error) {
	return p.users.GetUser(ctx, id)
}

// PlansStorage methods - делегируем к встроенному plans storage

func (p *PostgresStorage) CreatePlan(ctx context.Context, plan *storage.Plan) error {
	return p.plans.CreatePlan(ctx, plan)
}

func (p *PostgresStorage) GetPlan(ctx context.Context, id uuid.UUID) (*storage.Plan, error) {
	return p.plans.GetPlan(ctx, id)
}

func (p *PostgresStorage) GetLatestPlanForUser(ctx context.Context, userID uuid.UUID) (*storage.Plan, error) {
	return p.plans.GetLatestPlanForUser(ctx, userID)
}

// MessagesStorage methods - делегируем к встроенному messages storage

func (p *PostgresStorage) InsertMessage(ctx context.Context, message *storage.ConversationMessage) error {
	return p.messages.InsertMessage(ctx, message)
}

func (p *PostgresStorage) ListMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]storage.ConversationMessage, error) {
	return p.messages.ListMessages(ctx, sessionID, limit)
}
