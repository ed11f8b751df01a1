package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/linkspark/internal/models"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	// Используем in-memory database для тестов
	storage, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = storage.Close()
	}

	return storage, cleanup
}

func TestNew_RunsMigrations(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	for _, table := range []string{"events", "contact_messages"} {
		var name string
		err := s.db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestNew_ReopenFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "events.db")

	s, err := New(ctx, path)
	require.NoError(t, err)
	_, err = s.SaveEvent(ctx, &models.Event{Name: models.EventSave, CreatedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Повторное применение миграций не должно ломать данные
	s, err = New(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	events, err := s.RecentEvents(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestEventStorage_SaveAndRecent(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		event *models.Event
		name  string
	}{
		{name: "with params", event: &models.Event{Name: models.EventGenerate, Params: map[string]string{"type": "url"}, CreatedAt: base}},
		{name: "nil params", event: &models.Event{Name: models.EventClear, CreatedAt: base.Add(time.Second)}},
		{name: "download", event: &models.Event{Name: models.EventDownload, Params: map[string]string{"format": "svg"}, CreatedAt: base.Add(2 * time.Second)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := s.SaveEvent(ctx, tt.event)
			require.NoError(t, err)
			assert.Positive(t, id)
		})
	}

	events, err := s.RecentEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 3)

	// Новые события первыми
	assert.Equal(t, models.EventDownload, events[0].Name)
	assert.Equal(t, "svg", events[0].Params["format"])
	assert.Equal(t, models.EventClear, events[1].Name)
	assert.Empty(t, events[1].Params)
	assert.Equal(t, models.EventGenerate, events[2].Name)
	assert.True(t, base.Equal(events[2].CreatedAt))

	limited, err := s.RecentEvents(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	none, err := s.RecentEvents(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestContactStorage_SaveAndList(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	msgs, err := s.ListContactMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	first := &models.ContactMessage{Name: "Ann", Email: "ann@example.com", Message: "first message", CreatedAt: time.Now()}
	second := &models.ContactMessage{Name: "Bob", Email: "bob@example.com", Message: "second message", CreatedAt: time.Now()}

	id1, err := s.SaveContactMessage(ctx, first)
	require.NoError(t, err)
	id2, err := s.SaveContactMessage(ctx, second)
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	msgs, err = s.ListContactMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Bob", msgs[0].Name)
	assert.Equal(t, "ann@example.com", msgs[1].Email)
	assert.Equal(t, "first message", msgs[1].Message)
}

func TestStorage_ClosedErrors(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.SaveEvent(ctx, &models.Event{Name: models.EventSave})
	assert.Error(t, err)
	_, err = s.RecentEvents(ctx, 5)
	assert.Error(t, err)
	_, err = s.SaveContactMessage(ctx, &models.ContactMessage{})
	assert.Error(t, err)
}
