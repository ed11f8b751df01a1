// Package style builds QR style options through explicit transitions.
//
// Options are values: every change takes the previous options and returns
// new ones, so a caller holding an older value never observes a mutation.
package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iudanet/linkspark/internal/models"
	"github.com/iudanet/linkspark/internal/validation"
)

const (
	DefaultSize   = 300
	MinSize       = 100
	MaxSize       = 2000
	DefaultMargin = 10

	MinLogoSize     = 0.1
	MaxLogoSize     = 0.5
	DefaultLogoSize = 0.3
)

// Default returns the initial style of a new QR code.
func Default() models.StyleOptions {
	return models.StyleOptions{
		Size:              DefaultSize,
		Margin:            DefaultMargin,
		ErrorCorrection:   models.ErrorCorrectionQ,
		DotColor:          "#000000",
		DotShape:          models.DotSquare,
		Background:        "#ffffff",
		CornerSquareColor: "#000000",
		CornerSquareShape: models.CornerSquare,
		CornerDotColor:    "#000000",
		CornerDotShape:    models.CornerSquare,
	}
}

// Change is a single transition from one style to the next.
type Change func(models.StyleOptions) (models.StyleOptions, error)

// Apply runs changes in order against a copy of old.
// If any change fails, old is returned unchanged together with the error.
func Apply(old models.StyleOptions, changes ...Change) (models.StyleOptions, error) {
	next := old.Clone()
	for _, change := range changes {
		var err error
		next, err = change(next)
		if err != nil {
			return old, err
		}
	}
	return next, nil
}

// WithSize sets the rendered side length in pixels.
func WithSize(px int) Change {
	return func(o models.StyleOptions) (models.StyleOptions, error) {
		if px < MinSize || px > MaxSize {
			return o, fmt.Errorf("size must be between %d and %d pixels, got %d", MinSize, MaxSize, px)
		}
		o.Size = px
		return o, nil
	}
}

// WithMargin sets the quiet zone around the symbol in pixels.
func WithMargin(px int) Change {
	return func(o models.StyleOptions) (models.StyleOptions, error) {
		if px < 0 {
			return o, fmt.Errorf("margin cannot be negative")
		}
		o.Margin = px
		return o, nil
	}
}

// WithErrorCorrection sets the error-correction level (L, M, Q or H).
func WithErrorCorrection(level string) Change {
	return func(o models.StyleOptions) (models.StyleOptions, error) {
		l := models.ErrorCorrection(strings.ToUpper(strings.TrimSpace(level)))
		switch l {
		case models.ErrorCorrectionL, models.ErrorCorrectionM, models.ErrorCorrectionQ, models.ErrorCorrectionH:
			o.ErrorCorrection = l
			return o, nil
		}
		return o, fmt.Errorf("unknown error correction level %q: use L, M, Q or H", level)
	}
}

func WithDotColor(color string) Change {
	return func(o models.StyleOptions) (models.StyleOptions, error) {
		if err := validation.ValidateHexColor(color); err != nil {
			return o, err
		}
		o.DotColor = color
		return o, nil
	}
}

func WithDotShape(shape string) Change {
	return func(o models.StyleOptions) (models.StyleOptions, error) {
		s := models.DotShape(shape)
		switch s {
		case models.DotSquare, models.DotRounded, models.DotCircle:
			o.DotShape = s
			return o, nil
		}
		return o, fmt.Errorf("unknown dot shape %q: use square, rounded or dots", shape)
	}
}

func WithBackground(color string) Change {
	return func(o models.StyleOptions) (models.StyleOptions, error) {
		if err := validation.ValidateHexColor(color); err != nil {
			return o, err
		}
		o.Background = color
		return o, nil
	}
}

// WithCornerSquare sets the outer finder-pattern style. An empty argument
// keeps the current value.
func WithCornerSquare(color, shape string) Change {
	return func(o models.StyleOptions) (models.StyleOptions, error) {
		if color != "" {
			if err := validation.ValidateHexColor(color); err != nil {
				return o, err
			}
			o.CornerSquareColor = color
		}
		if shape != "" {
			s, err := parseCornerShape(shape)
			if err != nil {
				return o, err
			}
			o.CornerSquareShape = s
		}
		return o, nil
	}
}

// WithCornerDot sets the inner finder-pattern style. An empty argument
// keeps the current value.
func WithCornerDot(color, shape string) Change {
	return func(o models.StyleOptions) (models.StyleOptions, error) {
		if color != "" {
			if err := validation.ValidateHexColor(color); err != nil {
				return o, err
			}
			o.CornerDotColor = color
		}
		if shape != "" {
			s, err := parseCornerShape(shape)
			if err != nil {
				return o, err
			}
			if s == models.CornerExtraRounded {
				return o, fmt.Errorf("corner dot shape must be square or dot")
			}
			o.CornerDotShape = s
		}
		return o, nil
	}
}

func parseCornerShape(shape string) (models.CornerShape, error) {
	s := models.CornerShape(shape)
	switch s {
	case models.CornerSquare, models.CornerDot, models.CornerExtraRounded:
		return s, nil
	}
	return "", fmt.Errorf("unknown corner shape %q: use square, dot or extra-rounded", shape)
}

// WithLogo attaches a logo from the originally uploaded image bytes.
// Embedding a logo raises error correction to H so the covered modules
// can still be recovered.
func WithLogo(source []byte) Change {
	return func(o models.StyleOptions) (models.StyleOptions, error) {
		if len(source) == 0 {
			return o, fmt.Errorf("logo image is empty")
		}
		logo := models.Logo{
			Shape:   models.LogoSquare,
			Size:    DefaultLogoSize,
			Opacity: 1,
			Margin:  4,
		}
		if o.Logo != nil {
			logo = *o.Logo
		}
		logo.Source = append([]byte(nil), source...)
		o.Logo = &logo
		o.ErrorCorrection = models.ErrorCorrectionH
		return o, nil
	}
}

// WithoutLogo removes the logo.
func WithoutLogo() Change {
	return func(o models.StyleOptions) (models.StyleOptions, error) {
		o.Logo = nil
		return o, nil
	}
}

// WithLogoSize sets the logo size as a fraction of the symbol, clamped to
// [MinLogoSize, MaxLogoSize].
func WithLogoSize(fraction float64) Change {
	return withLogo(func(l *models.Logo) error {
		l.Size = ClampLogoSize(fraction)
		return nil
	})
}

// WithLogoShape sets the logo crop shape (square or circle).
func WithLogoShape(shape string) Change {
	return withLogo(func(l *models.Logo) error {
		s := models.LogoShape(shape)
		if s != models.LogoSquare && s != models.LogoCircle {
			return fmt.Errorf("unknown logo shape %q: use square or circle", shape)
		}
		l.Shape = s
		return nil
	})
}

// WithLogoOpacity sets the logo opacity, clamped to [0, 1].
func WithLogoOpacity(opacity float64) Change {
	return withLogo(func(l *models.Logo) error {
		l.Opacity = min(max(opacity, 0), 1)
		return nil
	})
}

// withLogo применяет изменение к копии логотипа; без логотипа это ошибка
func withLogo(fn func(*models.Logo) error) Change {
	return func(o models.StyleOptions) (models.StyleOptions, error) {
		if o.Logo == nil {
			return o, fmt.Errorf("no logo set")
		}
		logo := *o.Logo
		if err := fn(&logo); err != nil {
			return o, err
		}
		o.Logo = &logo
		return o, nil
	}
}

// WithData sets the live payload.
func WithData(data string) Change {
	return func(o models.StyleOptions) (models.StyleOptions, error) {
		o.Data = data
		return o, nil
	}
}

// ClampLogoSize ограничивает размер логотипа диапазоном [0.1, 0.5]
func ClampLogoSize(fraction float64) float64 {
	if fraction != fraction { // NaN
		return DefaultLogoSize
	}
	return min(max(fraction, MinLogoSize), MaxLogoSize)
}

// Keys accepted by ParseChanges.
const (
	KeySize              = "size"
	KeyMargin            = "margin"
	KeyErrorCorrection   = "ec"
	KeyDotColor          = "dot_color"
	KeyDotShape          = "dot_shape"
	KeyBackground        = "background"
	KeyCornerSquareColor = "corner_square_color"
	KeyCornerSquareShape = "corner_square_shape"
	KeyCornerDotColor    = "corner_dot_color"
	KeyCornerDotShape    = "corner_dot_shape"
	KeyLogoSize          = "logo_size"
	KeyLogoShape         = "logo_shape"
	KeyLogoOpacity       = "logo_opacity"
)

// keyOrder фиксирует порядок применения: настройки логотипа после остальных
var keyOrder = []string{
	KeySize, KeyMargin, KeyErrorCorrection, KeyDotColor, KeyDotShape, KeyBackground,
	KeyCornerSquareColor, KeyCornerSquareShape, KeyCornerDotColor, KeyCornerDotShape,
	KeyLogoSize, KeyLogoShape, KeyLogoOpacity,
}

// ParseChanges converts textual key/value settings into changes.
// Unknown keys are an error.
func ParseChanges(values map[string]string) ([]Change, error) {
	known := make(map[string]bool, len(keyOrder))
	for _, k := range keyOrder {
		known[k] = true
	}
	for k := range values {
		if !known[k] {
			return nil, fmt.Errorf("unknown style option %q", k)
		}
	}

	var changes []Change
	for _, key := range keyOrder {
		v, ok := values[key]
		if !ok {
			continue
		}
		change, err := parseChange(key, v)
		if err != nil {
			return nil, err
		}
		changes = append(changes, change)
	}
	return changes, nil
}

func parseChange(key, v string) (Change, error) {
	switch key {
	case KeySize, KeyMargin:
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: must be an integer", key, v)
		}
		if key == KeySize {
			return WithSize(n), nil
		}
		return WithMargin(n), nil
	case KeyErrorCorrection:
		return WithErrorCorrection(v), nil
	case KeyDotColor:
		return WithDotColor(v), nil
	case KeyDotShape:
		return WithDotShape(v), nil
	case KeyBackground:
		return WithBackground(v), nil
	case KeyCornerSquareColor:
		return WithCornerSquare(v, ""), nil
	case KeyCornerSquareShape:
		return WithCornerSquare("", v), nil
	case KeyCornerDotColor:
		return WithCornerDot(v, ""), nil
	case KeyCornerDotShape:
		return WithCornerDot("", v), nil
	case KeyLogoSize, KeyLogoOpacity:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: must be a number", key, v)
		}
		if key == KeyLogoSize {
			return WithLogoSize(f), nil
		}
		return WithLogoOpacity(f), nil
	case KeyLogoShape:
		return WithLogoShape(v), nil
	}
	return nil, fmt.Errorf("unknown style option %q", key)
}
