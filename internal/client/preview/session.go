package preview

import (
	"maps"
	"sync"
	"time"

	"github.com/iudanet/linkspark/internal/models"
	"github.com/iudanet/linkspark/internal/payload"
	"github.com/iudanet/linkspark/internal/style"
)

// ResultFunc receives the configuration with its regenerated payload
type ResultFunc func(cfg models.Config, res payload.Result)

// Session holds the configuration being edited.
// Fields of every type are kept, so switching type back and forth
// does not lose what was typed.
type Session struct {
	formatter *payload.Formatter
	debounce  *Debouncer
	onResult  ResultFunc
	fields    map[string]string
	qrType    models.QRType
	style     models.StyleOptions
	mu        sync.Mutex
}

// NewSession creates a session for type t with the given initial style
func NewSession(t models.QRType, st models.StyleOptions, formatter *payload.Formatter, delay time.Duration, onResult ResultFunc) *Session {
	if formatter == nil {
		formatter = payload.New()
	}
	return &Session{
		formatter: formatter,
		debounce:  NewDebouncer(delay),
		onResult:  onResult,
		fields:    map[string]string{},
		qrType:    t,
		style:     st.WithoutData(),
	}
}

// Config returns the current configuration. The payload is not included
// until a regeneration has completed.
func (s *Session) Config() (models.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configLocked()
}

func (s *Session) configLocked() (models.Config, error) {
	input, err := models.NewInput(s.qrType, s.fields)
	if err != nil {
		return models.Config{}, err
	}
	return models.Config{Input: input, Style: s.style.Clone()}, nil
}

// Fields returns a copy of all entered fields
func (s *Session) Fields() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.fields)
}

// Type returns the QR type being edited
func (s *Session) Type() models.QRType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qrType
}

// SetType switches the QR type and schedules a regeneration
func (s *Session) SetType(t models.QRType) {
	s.mu.Lock()
	s.qrType = t
	s.mu.Unlock()

	s.schedule()
}

// UpdateFields merges updates into the entered fields; an empty value
// removes a field. A regeneration is scheduled.
func (s *Session) UpdateFields(updates map[string]string) {
	s.mu.Lock()
	s.fields = models.MergeFields(s.fields, updates)
	s.mu.Unlock()

	s.schedule()
}

// UpdateStyle applies style changes. On error the style is left as it was.
func (s *Session) UpdateStyle(changes ...style.Change) error {
	s.mu.Lock()
	next, err := style.Apply(s.style, changes...)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.style = next.WithoutData()
	s.mu.Unlock()

	s.schedule()
	return nil
}

// Flush runs a pending regeneration now
func (s *Session) Flush() bool {
	return s.debounce.Flush()
}

// Close stops pending regenerations
func (s *Session) Close() {
	s.debounce.Stop()
}

func (s *Session) schedule() {
	s.debounce.Trigger(s.regenerate)
}

// regenerate форматирует снимок конфигурации и передает результат
func (s *Session) regenerate() {
	s.mu.Lock()
	cfg, err := s.configLocked()
	s.mu.Unlock()

	var res payload.Result
	if err != nil {
		res = payload.Result{Diagnostics: []payload.Diagnostic{{
			Kind:     payload.KindInvalid,
			Message:  err.Error(),
			Severity: payload.SeverityError,
		}}}
	} else {
		res = s.formatter.Format(cfg.Input)
	}
	cfg.Style.Data = res.Payload

	if s.onResult != nil {
		s.onResult(cfg, res)
	}
}
