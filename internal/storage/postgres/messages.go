package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/fdg312/fitcoach/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresMessagesStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresMessagesStorage(pool *pgxpool.Pool) *PostgresMessagesStorage {
	return &PostgresMessagesStorage{pool: pool}
}

func (s *PostgresMessagesStorage) InsertMessage(ctx context.Context, message *storage.ConversationMessage) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	message.Role = strings.TrimSpace(message.Role)
	message.CreatedAt = time.Now().UTC()

	const query = `
		INSERT INTO conversation_messages (id, session_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.pool.Exec(ctx, query,
		message.ID,
		message.SessionID,
		message.Role,
		message.Content,
		message.CreatedAt,
	)
	return err
}

func (s *PostgresMessagesStorage) ListMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]storage.ConversationMessage, error) {
	if limit <= 0 {
		limit = 50
	}

	const query = `
		SELECT id, session_id, role, content, created_at
		FROM (
			SELECT id, session_id, role, content, created_at
			FROM conversation_messages
			WHERE session_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		) latest
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]storage.ConversationMessage, 0, limit)
	for rows.Next() {
		var msg storage.ConversationMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.SessionID,
			&msg.Role,
			&msg.Content,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
