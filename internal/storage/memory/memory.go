package memory

import (
	"context"

	"github.com/fdg312/fitcoach/internal/storage"
	"github.com/google/uuid"
)

// MemoryStorage — in-memory реализация storage.Storage
type MemoryStorage struct {
	sessions *SessionsMemoryStorage
	users    *UsersMemoryStorage
	plans    *PlansMemoryStorage
	messages *MessagesMemoryStorage
}

// New создаёт пустой MemoryStorage
func New() *MemoryStorage {
	return &MemoryStorage{
		sessions: NewSessionsMemoryStorage(),
		users:    NewUsersMemoryStorage(),
		plans:    NewPlansMemoryStorage(),
		messages: NewMessagesMemoryStorage(),
	}
}

func (m *MemoryStorage) Close() {
	// no-op для memory
}

// GetSessionsStorage returns the sessions storage.
func (m *MemoryStorage) GetSessionsStorage() *SessionsMemoryStorage {
	return m.sessions
}

// GetUsersStorage returns the users storage.
func (m *MemoryStorage) GetUsersStorage() *UsersMemoryStorage {
	return m.users
}

// GetPlansStorage returns the plans storage.
func (m *MemoryStorage) GetPlansStorage() *PlansMemoryStorage {
	return m.plans
}

// GetMessagesStorage returns the conversation messages storage.
func (m *MemoryStorage) GetMessagesStorage() *MessagesMemoryStorage {
	return m.messages
}

// SessionsStorage methods - делегируем к встроенному sessions storage

func (m *MemoryStorage) CreateSession(ctx context.Context, session *storage.Session) error {
	return m.sessions.CreateSession(ctx, session)
}

func (m *MemoryStorage) GetSession(ctx context.Context, id uuid.UUID) (*storage.Session, error) {
	return m.sessions.GetSession(ctx, id)
}

func (m *MemoryStorage) UpdateSession(ctx context.Context, session *storage.Session) error {
	return m.sessions.UpdateSession(ctx, session)
}

// UsersStorage methods - делегируем к встроенному users storage

func (m *MemoryStorage) CreateUser(ctx context.Context, user *storage.User) error {
	return m.users.CreateUser(ctx, user)
}

func (m *MemoryStorage) GetUser(ctx context.Context, id uuid.UUID) (*storage.User, error) {
	return m.users.GetUser(ctx, id)
}

// PlansStorage methods - делегируем к встроенному plans storage

func (m *MemoryStorage) CreatePlan(ctx context.Context, plan *storage.Plan) error {
	return m.plans.CreatePlan(ctx, plan)
}

func (m *MemoryStorage) GetPlan(ctx context.Context, id uuid.UUID) (*storage.Plan, error) {
	return m.plans.GetPlan(ctx, id)
}

func (m *MemoryStorage) GetLatestPlanForUser(ctx context.Context, userID uuid.UUID) (*storage.Plan, error) {
	return m.plans.GetLatestPlanForUser(ctx, userID)
}

// MessagesStorage methods - делегируем к встроенному messages storage

func (m *MemoryStorage) InsertMessage(ctx context.Context, message *storage.ConversationMessage) error {
	return m.messages.InsertMessage(ctx, message)
}

func (m *MemoryStorage) ListMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]storage.ConversationMessage, error) {
	return m.messages.ListMessages(ctx, sessionID, limit)
}
