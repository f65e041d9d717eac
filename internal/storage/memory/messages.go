package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fdg312/fitcoach/internal/storage"
	"github.com/google/uuid"
)

type MessagesMemoryStorage struct {
	mu       sync.RWMutex
	messages []storage.ConversationMessage
}

func NewMessagesMemoryStorage() *MessagesMemoryStorage {
	return &MessagesMemoryStorage{
		messages: make([]storage.ConversationMessage, 0),
	}
}

func (s *MessagesMemoryStorage) InsertMessage(ctx context.Context, message *storage.ConversationMessage) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	message.CreatedAt = time.Now().UTC()

	s.messages = append(s.messages, *message)
	return nil
}

func (s *MessagesMemoryStorage) ListMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]storage.ConversationMessage, error) {
	_ = ctx

	if limit <= 0 {
		limit = 50
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]storage.ConversationMessage, 0, len(s.messages))
	for _, msg := range s.messages {
		if msg.SessionID != sessionID {
			continue
		}
		filtered = append(filtered, msg)
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].ID.String() < filtered[j].ID.String()
		}
		return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
	})

	if len(filtered) > limit {
		filtered = filtered[len(filtered)-limit:]
	}
	return filtered, nil
}
