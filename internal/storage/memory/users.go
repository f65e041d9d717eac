package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fdg312/fitcoach/internal/storage"
	"github.com/google/uuid"
)

type UsersMemoryStorage struct {
	mu    sync.RWMutex
	users map[uuid.UUID]storage.User
}

func NewUsersMemoryStorage() *UsersMemoryStorage {
	return &UsersMemoryStorage{
		users: make(map[uuid.UUID]storage.User),
	}
}

func (s *UsersMemoryStorage) CreateUser(ctx context.Context, user *storage.User) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now().UTC()

	s.users[user.ID] = *user
	return nil
}

func (s *UsersMemoryStorage) GetUser(ctx context.Context, id uuid.UUID) (*storage.User, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &user, nil
}
