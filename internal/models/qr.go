package models

import (
	"fmt"
	"strings"
)

// QRType определяет семантический тип QR-кода.
// От типа зависят набор полей ввода и формат итогового payload.
type QRType string

// QRType константы для поддерживаемых типов
const (
	TypeURL        QRType = "url"
	TypeText       QRType = "text"
	TypeEmail      QRType = "email"
	TypePhone      QRType = "phone"
	TypeWhatsApp   QRType = "whatsapp"
	TypeSMS        QRType = "sms"
	TypeLocation   QRType = "location"
	TypeEvent      QRType = "event"
	TypeWiFi       QRType = "wifi"
	TypeVCard      QRType = "vcard"
	TypeUPI        QRType = "upi"
	TypeAudioImage QRType = "audio-image"
)

// AllTypes returns every supported QR type in display order.
func AllTypes() []QRType {
	return []QRType{
		TypeURL, TypeText, TypeEmail, TypePhone, TypeWhatsApp, TypeSMS,
		TypeLocation, TypeEvent, TypeWiFi, TypeVCard, TypeUPI, TypeAudioImage,
	}
}

// ParseQRType converts a user-supplied name into a QRType.
func ParseQRType(s string) (QRType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range AllTypes() {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown QR type: %q", s)
}

// Config is a complete QR configuration: what to encode and how it looks.
// Config is treated as a value; transitions build a new Config.
type Config struct {
	Input Input        `json:"-"`
	Style StyleOptions `json:"style"`
}

// Type returns the QR type of the configured input.
func (c Config) Type() QRType {
	if c.Input == nil {
		return ""
	}
	return c.Input.Type()
}
