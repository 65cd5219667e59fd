package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finzap/finzap/internal/model"
)

// SaveMessage appends a message to the conversation audit trail.
func (s *SQLiteStorage) SaveMessage(ctx context.Context, msg *model.Message) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateMessage(msg); err != nil {
		return err
	}

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	if msg.Type == "" {
		msg.Type = model.MessageTypeText
	}

	query := `
		INSERT INTO messages (id, content, direction, timestamp, message_type, contact_id)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		msg.ID, msg.Content, string(msg.Direction), msg.Timestamp, string(msg.Type), msg.ContactID)
	if err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

// ListMessages returns a contact's most recent messages, newest first.
func (s *SQLiteStorage) ListMessages(ctx context.Context, contactID string, limit int) ([]model.Message, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(contactID, "contactID"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, content, direction, timestamp, message_type, contact_id
		FROM messages
		WHERE contact_id = ?
		ORDER BY timestamp DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, contactID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var msg model.Message
		var direction, msgType string
		if err := rows.Scan(&msg.ID, &msg.Content, &direction, &msg.Timestamp, &msgType, &msg.ContactID); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Direction = model.MessageDirection(direction)
		msg.Type = model.MessageType(msgType)
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}
	return messages, nil
}
