// Package contact handles contact form submissions.
// Messages are validated and recorded locally; nothing is delivered.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iudanet/linkspark/internal/client/analytics"
	"github.com/iudanet/linkspark/internal/client/storage"
	"github.com/iudanet/linkspark/internal/models"
	"github.com/iudanet/linkspark/internal/validation"
)

const (
	// MinMessageLen минимальная длина сообщения в символах
	MinMessageLen = 10
	// DefaultDelay имитация задержки отправки
	DefaultDelay = time.Second
)

// ErrInvalidMessage wraps every validation failure of a submission
var ErrInvalidMessage = errors.New("invalid contact message")

// Service submits contact form messages
type Service interface {
	Submit(ctx context.Context, msg *models.ContactMessage) (int64, error)
	List(ctx context.Context) ([]*models.ContactMessage, error)
}

type service struct {
	store   storage.ContactStorage
	tracker analytics.Tracker
	logger  *slog.Logger
	now     func() time.Time
	delay   time.Duration
}

// NewService creates a contact service. A negative delay is treated as zero.
func NewService(store storage.ContactStorage, tracker analytics.Tracker, logger *slog.Logger, delay time.Duration) Service {
	if tracker == nil {
		tracker = analytics.Nop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		store:   store,
		tracker: tracker,
		logger:  logger,
		now:     time.Now,
		delay:   max(delay, 0),
	}
}

// Validate checks all fields and reports every problem at once
func Validate(msg *models.ContactMessage) error {
	var errs []error

	if strings.TrimSpace(msg.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if err := validation.ValidateContactEmail(strings.TrimSpace(msg.Email)); err != nil {
		errs = append(errs, err)
	}
	if utf8.RuneCountInString(strings.TrimSpace(msg.Message)) < MinMessageLen {
		errs = append(errs, fmt.Errorf("message must be at least %d characters", MinMessageLen))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, errors.Join(errs...))
	}
	return nil
}

// Submit validates msg, waits for the simulated send and records it
func (s *service) Submit(ctx context.Context, msg *models.ContactMessage) (int64, error) {
	if err := Validate(msg); err != nil {
		return 0, err
	}

	// Имитация отправки на сервер
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("submission cancelled: %w", ctx.Err())
	case <-timer.C:
	}

	record := &models.ContactMessage{
		Name:      strings.TrimSpace(msg.Name),
		Email:     strings.TrimSpace(msg.Email),
		Message:   strings.TrimSpace(msg.Message),
		CreatedAt: s.now(),
	}

	id, err := s.store.SaveContactMessage(ctx, record)
	if err != nil {
		return 0, fmt.Errorf("failed to record contact message: %w", err)
	}

	s.logger.Info("contact message received", "id", id, "email", record.Email)
	s.tracker.Track(ctx, models.EventContact, nil)

	return id, nil
}

// List returns recorded messages, newest first
func (s *service) List(ctx context.Context) ([]*models.ContactMessage, error) {
	return s.store.ListContactMessages(ctx)
}
