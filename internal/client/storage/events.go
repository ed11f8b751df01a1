package storage

import (
	"context"

	"github.com/iudanet/linkspark/internal/models"
)

//go:generate moq -out events_mock.go . EventStorage ContactStorage

// EventStorage defines interface for the local analytics event log
type EventStorage interface {
	// SaveEvent appends an event and returns its ID
	SaveEvent(ctx context.Context, event *models.Event) (int64, error)

	// RecentEvents returns at most limit events, newest first
	RecentEvents(ctx context.Context, limit int) ([]*models.Event, error)
}

// ContactStorage defines interface for recording contact form submissions
type ContactStorage interface {
	// SaveContactMessage stores a submitted message and returns its ID
	SaveContactMessage(ctx context.Context, msg *models.ContactMessage) (int64, error)

	// ListContactMessages returns stored messages, newest first
	ListContactMessages(ctx context.Context) ([]*models.ContactMessage, error)
}
