package payload

import (
	"errors"
	"fmt"
)

const (
	// MaxPayloadLength практический предел алфавитно-цифровых данных
	// для QR-символа с высоким уровнем коррекции ошибок
	MaxPayloadLength = 2953

	// WarnPayloadLength после этой длины надежность сканирования падает
	WarnPayloadLength = 2000
)

// Severity определяет, блокирует ли диагностика генерацию
type Severity int

const (
	SeverityWarning Severity = iota // не блокирует генерацию
	SeverityError                   // payload пустой, генерация отклонена
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Kind классифицирует диагностическое сообщение
type Kind string

const (
	KindInvalid          Kind = "input-invalid"
	KindCapacityExceeded Kind = "capacity-exceeded"
	KindCapacityWarning  Kind = "capacity-warning"
	KindInternal         Kind = "internal"
)

// Diagnostic is a user-facing message produced while formatting.
type Diagnostic struct {
	Kind     Kind     `json:"kind"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Blocking reports whether the diagnostic prevents encoding.
func (d Diagnostic) Blocking() bool {
	return d.Severity == SeverityError
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Result is the outcome of formatting one input.
// An empty Payload means "not ready": either the input is still
// incomplete (no diagnostics) or it was rejected (blocking diagnostics).
type Result struct {
	Payload     string       `json:"payload"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Ready reports whether the result carries something to encode.
func (r Result) Ready() bool {
	return r.Payload != ""
}

// Warnings returns the non-blocking diagnostics.
func (r Result) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if !d.Blocking() {
			out = append(out, d)
		}
	}
	return out
}

// Err joins the blocking diagnostics into an error, or returns nil.
// Incomplete input without diagnostics yields ErrIncomplete.
func (r Result) Err() error {
	var errs []error
	for _, d := range r.Diagnostics {
		if d.Blocking() {
			errs = append(errs, errors.New(d.Message))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if r.Payload == "" {
		return ErrIncomplete
	}
	return nil
}

// ErrIncomplete indicates that a required field has not been filled in yet.
var ErrIncomplete = errors.New("required fields are missing")

// fieldError помечает некорректное значение конкретного поля
type fieldError struct {
	field string
	msg   string
}

func (e *fieldError) Error() string { return e.msg }

func invalid(field, format string, args ...any) error {
	return &fieldError{field: field, msg: fmt.Sprintf(format, args...)}
}
