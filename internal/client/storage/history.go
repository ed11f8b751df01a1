package storage

import (
	"context"

	"github.com/iudanet/linkspark/internal/models"
)

//go:generate moq -out history_mock.go . HistoryStorage

// HistoryStorage persists the whole history list as a single value.
// The list is always written in full so readers never observe a partial update.
type HistoryStorage interface {
	// LoadHistory returns the stored entries, newest first.
	// Returns an empty slice if nothing has been saved yet and
	// ErrHistoryCorrupted if the stored value cannot be decoded.
	LoadHistory(ctx context.Context) ([]models.HistoryEntry, error)

	// SaveHistory replaces the stored list
	SaveHistory(ctx context.Context, entries []models.HistoryEntry) error

	// ClearHistory removes the stored list
	ClearHistory(ctx context.Context) error
}
