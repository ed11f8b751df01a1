package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// HexColorPattern допустимый формат цвета: #rgb или #rrggbb
var HexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// UPIIDPattern формат VPA: handle@provider без пробелов
var UPIIDPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+$`)

var nonPhoneChars = regexp.MustCompile(`[^\d+]`)

const (
	// MinLatitude минимальная широта
	MinLatitude = -90.0
	// MaxLatitude максимальная широта
	MaxLatitude = 90.0
	// MinLongitude минимальная долгота
	MinLongitude = -180.0
	// MaxLongitude максимальная долгота
	MaxLongitude = 180.0

	// MinWhatsAppLen номер короче считается невалидным
	MinWhatsAppLen = 6
)

// ValidateEmail проверяет, что адрес содержит '@'.
// Более строгая проверка не нужна: адрес лишь попадает в mailto: ссылку.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address: must contain '@'")
	}
	return nil
}

// ValidateContactEmail is the stricter check used by the contact form:
// a local part, '@', and a domain containing a dot.
func ValidateContactEmail(email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	at := strings.LastIndex(email, "@")
	local, domain := email[:at], email[at+1:]
	if local == "" || !strings.Contains(domain, ".") || strings.HasSuffix(domain, ".") {
		return fmt.Errorf("invalid email address: %q", email)
	}
	return nil
}

// ValidateUPIID проверяет формат UPI ID (VPA)
func ValidateUPIID(id string) error {
	if id == "" {
		return fmt.Errorf("UPI ID cannot be empty")
	}
	if !UPIIDPattern.MatchString(id) {
		return fmt.Errorf("invalid UPI ID: expected format name@bank")
	}
	return nil
}

// ParseAmount parses a payment amount that must be a positive number.
func ParseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: must be a number", s)
	}
	if !(amount > 0) || math.IsInf(amount, 1) {
		return 0, fmt.Errorf("invalid amount %q: must be greater than zero", s)
	}
	return amount, nil
}

// ParseLatitude парсит широту и проверяет диапазон [-90, 90]
func ParseLatitude(s string) (float64, error) {
	return parseCoordinate(s, "latitude", MinLatitude, MaxLatitude)
}

// ParseLongitude парсит долготу и проверяет диапазон [-180, 180]
func ParseLongitude(s string) (float64, error) {
	return parseCoordinate(s, "longitude", MinLongitude, MaxLongitude)
}

func parseCoordinate(s, name string, lo, hi float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a number", name, s)
	}
	if math.IsNaN(v) || v < lo || v > hi {
		return 0, fmt.Errorf("invalid %s %v: must be between %v and %v", name, v, lo, hi)
	}
	return v, nil
}

// NormalizeWhatsAppNumber удаляет все символы кроме цифр и '+'
// и проверяет минимальную длину номера.
func NormalizeWhatsAppNumber(phone string) (string, error) {
	cleaned := nonPhoneChars.ReplaceAllString(phone, "")
	if len(cleaned) < MinWhatsAppLen {
		return "", fmt.Errorf("invalid WhatsApp number: too short")
	}
	return cleaned, nil
}

// ValidateHexColor проверяет цвет в формате #rgb или #rrggbb
func ValidateHexColor(color string) error {
	if !HexColorPattern.MatchString(color) {
		return fmt.Errorf("invalid color %q: expected #rgb or #rrggbb", color)
	}
	return nil
}

// IsDataURL reports whether s is a data URL whose media type starts with
// the given prefix (for example "image/").
func IsDataURL(s, mediaPrefix string) bool {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return false
	}
	return strings.HasPrefix(rest, mediaPrefix) && strings.Contains(rest, ",")
}
