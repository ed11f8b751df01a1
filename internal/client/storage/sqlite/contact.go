package sqlite

import (
	"context"
	"fmt"

	"github.com/iudanet/linkspark/internal/client/storage"
	"github.com/iudanet/linkspark/internal/models"
)

// SaveContactMessage stores a submitted contact message
func (s *Storage) SaveContactMessage(ctx context.Context, msg *models.ContactMessage) (int64, error) {
	query := `
		INSERT INTO contact_messages (name, email, message, created_at)
		VALUES (?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query, msg.Name, msg.Email, msg.Message, msg.CreatedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to save contact message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get contact message id: %w", err)
	}

	return id, nil
}

// ListContactMessages returns stored messages, newest first
func (s *Storage) ListContactMessages(ctx context.Context) ([]*models.ContactMessage, error) {
	query := `
		SELECT id, name, email, message, created_at
		FROM contact_messages
		ORDER BY id DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact messages: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var messages []*models.ContactMessage

	for rows.Next() {
		msg := &models.ContactMessage{}
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Message, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact messages: %w", err)
	}

	return messages, nil
}

var _ storage.ContactStorage = (*Storage)(nil)
