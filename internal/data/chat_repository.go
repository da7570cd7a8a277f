package data

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ChatMessageRepository handles database operations for the per-user
// append-only conversation log.
type ChatMessageRepository struct {
	db *sqlx.DB
}

// NewChatMessageRepository creates a new ChatMessageRepository.
func NewChatMessageRepository(db *sqlx.DB) *ChatMessageRepository {
	return &ChatMessageRepository{db: db}
}

// Create appends a message to the owner's conversation log.
func (r *ChatMessageRepository) Create(ctx context.Context, msg *ChatMessage) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO chat_messages (user_id, role, content, created_at)
	          VALUES (:user_id, :role, :content, :created_at)`
	res, err := r.db.NamedExecContext(ctx, query, msg)
	if err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get chat message id: %w", err)
	}
	msg.ID = id
	return nil
}

// ListByUser retrieves one user's messages in creation order.
func (r *ChatMessageRepository) ListByUser(ctx context.Context, userID int64) ([]ChatMessage, error) {
	messages := []ChatMessage{}
	query := `SELECT id, user_id, role, content, created_at FROM chat_messages
	          WHERE user_id = ? ORDER BY created_at, id`
	if err := r.db.SelectContext(ctx, &messages, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	return messages, nil
}

// DeleteByUser removes all of one user's messages; other users' histories
// are untouched.
func (r *ChatMessageRepository) DeleteByUser(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear chat messages: %w", err)
	}
	return nil
}
