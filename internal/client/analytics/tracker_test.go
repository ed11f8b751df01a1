package analytics

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/linkspark/internal/models"
)

// mockEventStorage простая реализация EventStorage для тестов
type mockEventStorage struct {
	saveErr error
	events  []*models.Event
}

func (m *mockEventStorage) SaveEvent(ctx context.Context, event *models.Event) (int64, error) {
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.events = append(m.events, event)
	return int64(len(m.events)), nil
}

func (m *mockEventStorage) RecentEvents(ctx context.Context, limit int) ([]*models.Event, error) {
	out := []*models.Event{}
	for i := len(m.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.events[i])
	}
	return out, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTracker_Track(t *testing.T) {
	store := &mockEventStorage{}
	tr := NewTracker(store, discardLogger()).(*tracker)
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	tr.now = func() time.Time { return fixed }

	params := map[string]string{"type": "wifi"}
	tr.Track(context.Background(), models.EventSave, params)

	// Изменение исходной карты не влияет на записанное событие
	params["type"] = "url"

	require.Len(t, store.events, 1)
	assert.Equal(t, models.EventSave, store.events[0].Name)
	assert.Equal(t, "wifi", store.events[0].Params["type"])
	assert.Equal(t, fixed, store.events[0].CreatedAt)
}

func TestTracker_TrackCancelledContext(t *testing.T) {
	store := &mockEventStorage{}
	tr := NewTracker(store, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tr.Track(ctx, models.EventClear, nil)

	assert.Len(t, store.events, 1)
}

func TestTracker_StorageErrorIsSwallowed(t *testing.T) {
	store := &mockEventStorage{saveErr: errors.New("disk full")}
	tr := NewTracker(store, discardLogger())

	assert.NotPanics(t, func() {
		tr.Track(context.Background(), models.EventDelete, map[string]string{"id": "x"})
	})
	assert.Empty(t, store.events)
}

func TestTracker_Recent(t *testing.T) {
	store := &mockEventStorage{}
	tr := NewTracker(store, nil)

	for _, name := range []models.EventName{models.EventGenerate, models.EventSave, models.EventLoad} {
		tr.Track(context.Background(), name, nil)
	}

	events, err := tr.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.EventLoad, events[0].Name)
	assert.Equal(t, models.EventSave, events[1].Name)
}

func TestNop(t *testing.T) {
	tr := Nop()
	tr.Track(context.Background(), models.EventSave, nil)

	events, err := tr.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}
