package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iudanet/linkspark/internal/client/storage"
	"github.com/iudanet/linkspark/internal/models"
)

// SaveEvent appends an event to the log
func (s *Storage) SaveEvent(ctx context.Context, event *models.Event) (int64, error) {
	params := event.Params
	if params == nil {
		params = map[string]string{}
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal event params: %w", err)
	}

	query := `
		INSERT INTO events (name, params, created_at)
		VALUES (?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query, string(event.Name), string(raw), event.CreatedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to save event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get event id: %w", err)
	}

	return id, nil
}

// RecentEvents returns at most limit events, newest first
func (s *Storage) RecentEvents(ctx context.Context, limit int) ([]*models.Event, error) {
	if limit <= 0 {
		return []*models.Event{}, nil
	}

	query := `
		SELECT id, name, params, created_at
		FROM events
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	events := []*models.Event{}

	for rows.Next() {
		var (
			event models.Event
			name  string
			raw   string
		)
		if err := rows.Scan(&event.ID, &name, &raw, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		event.Name = models.EventName(name)
		if err := json.Unmarshal([]byte(raw), &event.Params); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event params: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

var _ storage.EventStorage = (*Storage)(nil)
