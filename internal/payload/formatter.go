package payload

import (
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/linkspark/internal/models"
)

// errIncomplete внутренний маркер: обязательное поле еще не заполнено
var errIncomplete = errors.New("incomplete")

// Formatter turns typed input into the string encoded in a QR code.
// The zero value is not usable; create one with New.
type Formatter struct {
	now func() time.Time
	loc *time.Location
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithClock sets the clock used for event UIDs.
func WithClock(now func() time.Time) Option {
	return func(f *Formatter) {
		f.now = now
	}
}

// WithLocation sets the zone in which wall-clock event times are interpreted.
func WithLocation(loc *time.Location) Option {
	return func(f *Formatter) {
		f.loc = loc
	}
}

// New creates a Formatter using the local zone and the system clock.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		now: time.Now,
		loc: time.Local,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var defaultFormatter = New()

// Format formats input with the default formatter.
func Format(input models.Input) Result {
	return defaultFormatter.Format(input)
}

// Format returns the payload for input together with diagnostics.
// It never fails: invalid input yields an empty payload and a blocking
// diagnostic, incomplete input yields an empty payload and nothing else.
func (f *Formatter) Format(input models.Input) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Diagnostics: []Diagnostic{{
				Kind:     KindInternal,
				Severity: SeverityError,
				Message:  fmt.Sprintf("failed to format QR data: %v", r),
			}}}
		}
	}()

	if input == nil {
		return Result{}
	}

	data, err := f.format(input)
	if err != nil {
		if errors.Is(err, errIncomplete) {
			return Result{}
		}
		d := Diagnostic{
			Kind:     KindInvalid,
			Severity: SeverityError,
			Message:  err.Error(),
		}
		var fe *fieldError
		if errors.As(err, &fe) {
			d.Field = fe.field
		}
		return Result{Diagnostics: []Diagnostic{d}}
	}

	return checkCapacity(data)
}

func (f *Formatter) format(input models.Input) (string, error) {
	switch in := input.(type) {
	case models.URLInput:
		return formatURL(in)
	case models.TextInput:
		return formatText(in)
	case models.EmailInput:
		return formatEmail(in)
	case models.PhoneInput:
		return formatPhone(in)
	case models.WhatsAppInput:
		return formatWhatsApp(in)
	case models.SMSInput:
		return formatSMS(in)
	case models.LocationInput:
		return formatLocation(in)
	case models.EventInput:
		return f.formatEvent(in)
	case models.WiFiInput:
		return formatWiFi(in)
	case models.VCardInput:
		return formatVCard(in)
	case models.UPIInput:
		return formatUPI(in)
	case models.AudioImageInput:
		return formatAudioImage(in)
	default:
		return "", fmt.Errorf("unsupported QR type: %s", input.Type())
	}
}

// checkCapacity применяет глобальные ограничения длины
func checkCapacity(data string) Result {
	n := Length(data)
	switch {
	case n > MaxPayloadLength:
		return Result{Diagnostics: []Diagnostic{{
			Kind:     KindCapacityExceeded,
			Severity: SeverityError,
			Message:  fmt.Sprintf("data is too long for a QR code: %d characters (maximum %d)", n, MaxPayloadLength),
		}}}
	case n > WarnPayloadLength:
		return Result{
			Payload: data,
			Diagnostics: []Diagnostic{{
				Kind:     KindCapacityWarning,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("data is long (%d characters); the QR code may be hard to scan", n),
			}},
		}
	default:
		return Result{Payload: data}
	}
}
