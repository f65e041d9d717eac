package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fdg312/fitcoach/internal/storage"
	"github.com/google/uuid"
)

type SessionsMemoryStorage struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]storage.Session
}

func NewSessionsMemoryStorage() *SessionsMemoryStorage {
	return &SessionsMemoryStorage{
		sessions: make(map[uuid.UUID]storage.Session),
	}
}

func (s *SessionsMemoryStorage) CreateSession(ctx context.Context, session *storage.Session) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	session.CreatedAt = time.Now().UTC()
	session.UpdatedAt = session.CreatedAt

	s.sessions[session.ID] = cloneSession(*session)
	return nil
}

func (s *SessionsMemoryStorage) GetSession(ctx context.Context, id uuid.UUID) (*storage.Session, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	session = cloneSession(session)
	return &session, nil
}

func (s *SessionsMemoryStorage) UpdateSession(ctx context.Context, session *storage.Session) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; !ok {
		return storage.ErrNotFound
	}
	session.UpdatedAt = time.Now().UTC()
	s.sessions[session.ID] = cloneSession(*session)
	return nil
}

// cloneSession копирует срез Collected, чтобы хранилище не делило память
// с вызывающим кодом.
func cloneSession(session storage.Session) storage.Session {
	if session.Collected != nil {
		session.Collected = append([]byte(nil), session.Collected...)
	}
	return session
}
