// Package analytics records best-effort usage events in the local event log.
package analytics

import (
	"context"
	"log/slog"
	"maps"
	"time"

	"github.com/iudanet/linkspark/internal/client/storage"
	"github.com/iudanet/linkspark/internal/models"
)

// Tracker records application events.
// Track never fails: storage errors are logged and otherwise ignored.
type Tracker interface {
	Track(ctx context.Context, name models.EventName, params map[string]string)
	Recent(ctx context.Context, limit int) ([]*models.Event, error)
}

type tracker struct {
	store  storage.EventStorage
	logger *slog.Logger
	now    func() time.Time
}

// NewTracker creates a Tracker backed by store
func NewTracker(store storage.EventStorage, logger *slog.Logger) Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &tracker{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Track appends an event to the log
func (t *tracker) Track(ctx context.Context, name models.EventName, params map[string]string) {
	event := &models.Event{
		Name:      name,
		Params:    maps.Clone(params),
		CreatedAt: t.now(),
	}

	// Отмена операции не должна терять событие о ней
	id, err := t.store.SaveEvent(context.WithoutCancel(ctx), event)
	if err != nil {
		t.logger.Warn("failed to record event", "event", name, "error", err)
		return
	}

	t.logger.Debug("event recorded", "event", name, "id", id)
}

// Recent returns the latest events, newest first
func (t *tracker) Recent(ctx context.Context, limit int) ([]*models.Event, error) {
	return t.store.RecentEvents(ctx, limit)
}

type nop struct{}

// Nop returns a Tracker that discards every event
func Nop() Tracker {
	return nop{}
}

func (nop) Track(context.Context, models.EventName, map[string]string) {}

func (nop) Recent(context.Context, int) ([]*models.Event, error) {
	return []*models.Event{}, nil
}
