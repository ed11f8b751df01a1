// Package history manages the locally persisted list of saved QR configurations.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/iudanet/linkspark/internal/client/analytics"
	"github.com/iudanet/linkspark/internal/client/storage"
	"github.com/iudanet/linkspark/internal/crypto"
	"github.com/iudanet/linkspark/internal/models"
	"github.com/iudanet/linkspark/internal/payload"
	"github.com/iudanet/linkspark/internal/render"
)

var (
	// ErrNotRenderable indicates that the configuration does not produce a QR code
	ErrNotRenderable = errors.New("configuration cannot be rendered")

	// ErrDuplicate indicates that an identical configuration is already saved
	ErrDuplicate = errors.New("this QR code already exists in history")

	// ErrNotFound indicates that no entry has the requested ID
	ErrNotFound = errors.New("history entry not found")
)

// copySuffix добавляется к метке дубликата
const copySuffix = " (copy)"

// Loaded is a history entry restored into a live configuration.
// Config.Style.Data holds the freshly regenerated payload.
type Loaded struct {
	Entry    *models.HistoryEntry
	Symbol   *render.Symbol // nil if the stored input no longer renders
	Config   models.Config
	Result   payload.Result
	Warnings []string
}

// Service manages saved QR configurations
type Service interface {
	Save(ctx context.Context, cfg models.Config, label string) (*models.HistoryEntry, error)
	Load(ctx context.Context, id string) (*Loaded, error)
	Get(ctx context.Context, id string) (*models.HistoryEntry, error)
	List(ctx context.Context) ([]models.HistoryEntry, error)
	Search(ctx context.Context, query string) ([]models.HistoryEntry, error)
	Delete(ctx context.Context, id string) error
	Duplicate(ctx context.Context, id string) (*models.HistoryEntry, error)
	Relabel(ctx context.Context, id, label string) (*models.HistoryEntry, error)
	Clear(ctx context.Context) (int, error)
}

// Option configures the service
type Option func(*service)

// WithFormatter sets the payload formatter used on save and load
func WithFormatter(f *payload.Formatter) Option {
	return func(s *service) {
		s.formatter = f
	}
}

// WithClock sets the time source for entry timestamps
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

type service struct {
	store     storage.HistoryStorage
	tracker   analytics.Tracker
	logger    *slog.Logger
	formatter *payload.Formatter
	now       func() time.Time
	newID     func() string
}

// NewService creates a new history service
func NewService(store storage.HistoryStorage, tracker analytics.Tracker, logger *slog.Logger, opts ...Option) Service {
	s := &service{
		store:     store,
		tracker:   tracker,
		logger:    logger,
		formatter: payload.New(),
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	if s.tracker == nil {
		s.tracker = analytics.Nop()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fingerprint identifies a configuration by type, input fields and style.
// The payload is excluded: it is derived from the input.
func Fingerprint(t models.QRType, input map[string]string, st models.StyleOptions) (string, error) {
	// encoding/json сортирует ключи карты, сериализация детерминирована
	rawInput, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("failed to marshal input: %w", err)
	}
	rawStyle, err := json.Marshal(st.WithoutData())
	if err != nil {
		return "", fmt.Errorf("failed to marshal style: %w", err)
	}
	return crypto.Fingerprint([]byte(t), rawInput, rawStyle), nil
}

// entries загружает список; поврежденные данные дают пустой список
func (s *service) entries(ctx context.Context) ([]models.HistoryEntry, error) {
	entries, err := s.store.LoadHistory(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrHistoryCorrupted) {
			s.logger.Warn("history is corrupted, starting with an empty list", "error", err)
			return []models.HistoryEntry{}, nil
		}
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return entries, nil
}

func (s *service) persist(ctx context.Context, entries []models.HistoryEntry) error {
	if err := s.store.SaveHistory(ctx, entries); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// prepend добавляет запись в начало и удаляет самые старые сверх лимита
func (s *service) prepend(entries []models.HistoryEntry, e models.HistoryEntry) []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, len(entries)+1)
	out = append(out, e)
	out = append(out, entries...)
	if len(out) > models.MaxHistoryEntries {
		for _, old := range out[models.MaxHistoryEntries:] {
			s.logger.Debug("evicting oldest history entry", "id", old.ID)
		}
		out = out[:models.MaxHistoryEntries]
	}
	return out
}

func indexOf(entries []models.HistoryEntry, id string) int {
	return slices.IndexFunc(entries, func(e models.HistoryEntry) bool {
		return e.ID == id
	})
}

// Save stores a renderable configuration as a new entry at the top of the list
func (s *service) Save(ctx context.Context, cfg models.Config, label string) (*models.HistoryEntry, error) {
	if cfg.Input == nil {
		return nil, fmt.Errorf("%w: %w", ErrNotRenderable, payload.ErrIncomplete)
	}

	res := s.formatter.Format(cfg.Input)
	if !res.Ready() {
		return nil, fmt.Errorf("%w: %w", ErrNotRenderable, res.Err())
	}

	st := cfg.Style.WithoutData()
	sym, warnings, err := render.Compose(ctx, res.Payload, st)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotRenderable, err)
	}
	for _, w := range warnings {
		s.logger.Warn("logo warning", "warning", w)
	}

	preview, err := sym.PreviewPNG()
	if err != nil {
		// Миниатюра не обязательна
		s.logger.Warn("failed to build preview", "error", err)
	}

	input := cfg.Input.Fields()
	fp, err := Fingerprint(cfg.Type(), input, st)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if e.Fingerprint == fp {
			return nil, fmt.Errorf("%w (saved as %q)", ErrDuplicate, e.DisplayName())
		}
	}

	entry := models.HistoryEntry{
		ID:          s.newID(),
		Type:        cfg.Type(),
		Label:       strings.TrimSpace(label),
		CreatedAt:   s.now(),
		Input:       input,
		Style:       st,
		Fingerprint: fp,
		Preview:     preview,
	}

	if err := s.persist(ctx, s.prepend(entries, entry)); err != nil {
		return nil, err
	}

	s.logger.Info("saved to history", "id", entry.ID, "type", entry.Type)
	s.tracker.Track(ctx, models.EventSave, map[string]string{"type": string(entry.Type)})

	return entry.Clone(), nil
}

// Get returns a single entry
func (s *service) Get(ctx context.Context, id string) (*models.HistoryEntry, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(entries, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return entries[i].Clone(), nil
}

// Load restores an entry. The payload is regenerated from the stored input
// and the logo is processed again from the original upload.
func (s *service) Load(ctx context.Context, id string) (*Loaded, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	input, err := models.NewInput(entry.Type, entry.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to restore input: %w", err)
	}

	loaded := &Loaded{
		Entry:  entry,
		Config: models.Config{Input: input, Style: entry.Style.Clone()},
		Result: s.formatter.Format(input),
	}
	loaded.Config.Style.Data = loaded.Result.Payload

	if loaded.Result.Ready() {
		sym, warnings, err := render.Compose(ctx, loaded.Result.Payload, loaded.Config.Style)
		loaded.Warnings = warnings
		if err != nil {
			loaded.Warnings = append(loaded.Warnings, err.Error())
		} else {
			loaded.Symbol = sym
		}
	}

	s.tracker.Track(ctx, models.EventLoad, map[string]string{"type": string(entry.Type)})

	return loaded, nil
}

// List returns all entries, newest first
func (s *service) List(ctx context.Context) ([]models.HistoryEntry, error) {
	return s.entries(ctx)
}

// Search returns entries whose label, type or input contains query, ignoring case
func (s *service) Search(ctx context.Context, query string) ([]models.HistoryEntry, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return entries, nil
	}

	fold := cases.Fold()
	needle := fold.String(query)

	out := []models.HistoryEntry{}
	for _, e := range entries {
		raw, err := json.Marshal(e.Input)
		if err != nil {
			continue
		}
		for _, hay := range []string{e.Label, string(e.Type), string(raw)} {
			if strings.Contains(fold.String(hay), needle) {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

// Delete removes an entry
func (s *service) Delete(ctx context.Context, id string) error {
	entries, err := s.entries(ctx)
	if err != nil {
		return err
	}

	i := indexOf(entries, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	removed := entries[i]

	if err := s.persist(ctx, slices.Delete(entries, i, i+1)); err != nil {
		return err
	}

	s.tracker.Track(ctx, models.EventDelete, map[string]string{"type": string(removed.Type)})
	return nil
}

// Duplicate copies an entry under a new ID at the top of the list
func (s *service) Duplicate(ctx context.Context, id string) (*models.HistoryEntry, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(entries, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	dup := entries[i].Clone()
	dup.ID = s.newID()
	dup.CreatedAt = s.now()
	dup.Label = entries[i].DisplayName() + copySuffix

	if err := s.persist(ctx, s.prepend(entries, *dup)); err != nil {
		return nil, err
	}

	s.tracker.Track(ctx, models.EventDuplicate, map[string]string{"type": string(dup.Type)})
	return dup, nil
}

// Relabel changes the label of an entry. An empty label clears it.
func (s *service) Relabel(ctx context.Context, id, label string) (*models.HistoryEntry, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(entries, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	entries[i].Label = strings.TrimSpace(label)
	if err := s.persist(ctx, entries); err != nil {
		return nil, err
	}

	s.tracker.Track(ctx, models.EventLabelEdit, nil)
	return entries[i].Clone(), nil
}

// Clear removes all entries and returns how many were removed
func (s *service) Clear(ctx context.Context) (int, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return 0, err
	}

	if err := s.store.ClearHistory(ctx); err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}

	s.tracker.Track(ctx, models.EventClear, map[string]string{"count": strconv.Itoa(len(entries))})
	return len(entries), nil
}
