package models

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Input is the type-specific data entered for a QR code.
// Each QR type has its own variant struct.
type Input interface {
	// Type returns the QR type this variant belongs to
	Type() QRType

	// Fields returns the flat, type-prefixed field mapping of the variant.
	// Empty values are omitted.
	Fields() map[string]string
}

// Field names of the flat input mapping.
const (
	FieldURL = "url"

	FieldText = "text"

	FieldEmail        = "email"
	FieldEmailSubject = "email_subject"
	FieldEmailBody    = "email_body"

	FieldPhone = "phone"

	FieldWhatsAppPhone   = "whatsapp_phone"
	FieldWhatsAppMessage = "whatsapp_message"

	FieldSMSPhone   = "sms_phone"
	FieldSMSMessage = "sms_message"

	FieldLatitude  = "latitude"
	FieldLongitude = "longitude"

	FieldEventSummary     = "event_summary"
	FieldEventStart       = "event_start"
	FieldEventEnd         = "event_end"
	FieldEventLocation    = "event_location"
	FieldEventDescription = "event_description"

	FieldWiFiSSID       = "wifi_ssid"
	FieldWiFiPassword   = "wifi_password"
	FieldWiFiEncryption = "wifi_encryption"
	FieldWiFiHidden     = "wifi_hidden"

	FieldVCardFirstName = "vcard_firstName"
	FieldVCardLastName  = "vcard_lastName"
	FieldVCardOrg       = "vcard_org"
	FieldVCardTitle     = "vcard_title"
	FieldVCardPhone     = "vcard_phone"
	FieldVCardEmail     = "vcard_email"
	FieldVCardURL       = "vcard_url"
	FieldVCardAddress   = "vcard_address"
	FieldVCardNote      = "vcard_note"

	FieldUPIID     = "upi_id"
	FieldUPIName   = "upi_name"
	FieldUPIAmount = "upi_amount"
	FieldUPINote   = "upi_note"

	FieldAudioURL = "audioUrl"
	FieldImageURL = "imageUrl"
)

// Wi-Fi encryption modes
const (
	WiFiWPA  = "WPA"
	WiFiWEP  = "WEP"
	WiFiNone = "None"
)

// FieldSpec describes one input field for prompting and help output.
type FieldSpec struct {
	Name     string
	Label    string
	Required bool
	Secret   bool // вводится без эха (пароли)
}

var fieldSpecs = map[QRType][]FieldSpec{
	TypeURL:  {{Name: FieldURL, Label: "URL", Required: true}},
	TypeText: {{Name: FieldText, Label: "Text", Required: true}},
	TypeEmail: {
		{Name: FieldEmail, Label: "Email address", Required: true},
		{Name: FieldEmailSubject, Label: "Subject"},
		{Name: FieldEmailBody, Label: "Body"},
	},
	TypePhone: {{Name: FieldPhone, Label: "Phone number", Required: true}},
	TypeWhatsApp: {
		{Name: FieldWhatsAppPhone, Label: "WhatsApp number", Required: true},
		{Name: FieldWhatsAppMessage, Label: "Message"},
	},
	TypeSMS: {
		{Name: FieldSMSPhone, Label: "Phone number", Required: true},
		{Name: FieldSMSMessage, Label: "Message"},
	},
	TypeLocation: {
		{Name: FieldLatitude, Label: "Latitude", Required: true},
		{Name: FieldLongitude, Label: "Longitude", Required: true},
	},
	TypeEvent: {
		{Name: FieldEventSummary, Label: "Title", Required: true},
		{Name: FieldEventStart, Label: "Start (YYYY-MM-DDTHH:MM)", Required: true},
		{Name: FieldEventEnd, Label: "End (YYYY-MM-DDTHH:MM)"},
		{Name: FieldEventLocation, Label: "Location"},
		{Name: FieldEventDescription, Label: "Description"},
	},
	TypeWiFi: {
		{Name: FieldWiFiSSID, Label: "Network name (SSID)", Required: true},
		{Name: FieldWiFiEncryption, Label: "Encryption (WPA, WEP, None)"},
		{Name: FieldWiFiPassword, Label: "Password", Secret: true},
		{Name: FieldWiFiHidden, Label: "Hidden network (true/false)"},
	},
	TypeVCard: {
		{Name: FieldVCardFirstName, Label: "First name", Required: true},
		{Name: FieldVCardLastName, Label: "Last name", Required: true},
		{Name: FieldVCardOrg, Label: "Organization"},
		{Name: FieldVCardTitle, Label: "Job title"},
		{Name: FieldVCardPhone, Label: "Phone"},
		{Name: FieldVCardEmail, Label: "Email"},
		{Name: FieldVCardURL, Label: "Website"},
		{Name: FieldVCardAddress, Label: "Address"},
		{Name: FieldVCardNote, Label: "Note"},
	},
	TypeUPI: {
		{Name: FieldUPIID, Label: "UPI ID (name@bank)", Required: true},
		{Name: FieldUPIName, Label: "Payee name"},
		{Name: FieldUPIAmount, Label: "Amount (INR)", Required: true},
		{Name: FieldUPINote, Label: "Note"},
	},
	TypeAudioImage: {
		{Name: FieldAudioURL, Label: "Audio file path", Required: true},
		{Name: FieldImageURL, Label: "Image file path", Required: true},
	},
}

// FieldsFor returns the input fields of a QR type in prompt order.
func FieldsFor(t QRType) []FieldSpec {
	return fieldSpecs[t]
}

// URLInput данные для типа url
type URLInput struct {
	URL string `json:"url"`
}

// TextInput данные для типа text
type TextInput struct {
	Text string `json:"text"`
}

// EmailInput данные для типа email
type EmailInput struct {
	Address string `json:"address"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// PhoneInput данные для типа phone
type PhoneInput struct {
	Number string `json:"number"`
}

// WhatsAppInput данные для типа whatsapp
type WhatsAppInput struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SMSInput данные для типа sms
type SMSInput struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// LocationInput хранит координаты в том виде, в каком их ввел пользователь.
// Разбор и проверка диапазона выполняются при форматировании.
type LocationInput struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// EventInput данные календарного события
type EventInput struct {
	Summary     string `json:"summary"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// WiFiInput данные для подключения к Wi-Fi сети
type WiFiInput struct {
	SSID       string `json:"ssid"`
	Password   string `json:"password"`
	Encryption string `json:"encryption"` // WPA, WEP или None
	Hidden     bool   `json:"hidden"`
}

// VCardInput данные визитной карточки
type VCardInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Org       string `json:"org"`
	Title     string `json:"title"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	URL       string `json:"url"`
	Address   string `json:"address"`
	Note      string `json:"note"`
}

// UPIInput данные UPI платежа
type UPIInput struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Note   string `json:"note"`
}

// AudioImageInput содержит медиа "подарочной открытки" в виде data URL
type AudioImageInput struct {
	AudioURL string `json:"audio_url"`
	ImageURL string `json:"image_url"`
}

func (URLInput) Type() QRType        { return TypeURL }
func (TextInput) Type() QRType       { return TypeText }
func (EmailInput) Type() QRType      { return TypeEmail }
func (PhoneInput) Type() QRType      { return TypePhone }
func (WhatsAppInput) Type() QRType   { return TypeWhatsApp }
func (SMSInput) Type() QRType        { return TypeSMS }
func (LocationInput) Type() QRType   { return TypeLocation }
func (EventInput) Type() QRType      { return TypeEvent }
func (WiFiInput) Type() QRType       { return TypeWiFi }
func (VCardInput) Type() QRType      { return TypeVCard }
func (UPIInput) Type() QRType        { return TypeUPI }
func (AudioImageInput) Type() QRType { return TypeAudioImage }

func (i URLInput) Fields() map[string]string {
	return compact(map[string]string{FieldURL: i.URL})
}

func (i TextInput) Fields() map[string]string {
	return compact(map[string]string{FieldText: i.Text})
}

func (i EmailInput) Fields() map[string]string {
	return compact(map[string]string{
		FieldEmail:        i.Address,
		FieldEmailSubject: i.Subject,
		FieldEmailBody:    i.Body,
	})
}

func (i PhoneInput) Fields() map[string]string {
	return compact(map[string]string{FieldPhone: i.Number})
}

func (i WhatsAppInput) Fields() map[string]string {
	return compact(map[string]string{
		FieldWhatsAppPhone:   i.Phone,
		FieldWhatsAppMessage: i.Message,
	})
}

func (i SMSInput) Fields() map[string]string {
	return compact(map[string]string{
		FieldSMSPhone:   i.Phone,
		FieldSMSMessage: i.Message,
	})
}

func (i LocationInput) Fields() map[string]string {
	return compact(map[string]string{
		FieldLatitude:  i.Latitude,
		FieldLongitude: i.Longitude,
	})
}

func (i EventInput) Fields() map[string]string {
	return compact(map[string]string{
		FieldEventSummary:     i.Summary,
		FieldEventStart:       i.Start,
		FieldEventEnd:         i.End,
		FieldEventLocation:    i.Location,
		FieldEventDescription: i.Description,
	})
}

func (i WiFiInput) Fields() map[string]string {
	fields := compact(map[string]string{
		FieldWiFiSSID:       i.SSID,
		FieldWiFiPassword:   i.Password,
		FieldWiFiEncryption: i.Encryption,
	})
	if i.Hidden {
		fields[FieldWiFiHidden] = "true"
	}
	return fields
}

func (i VCardInput) Fields() map[string]string {
	return compact(map[string]string{
		FieldVCardFirstName: i.FirstName,
		FieldVCardLastName:  i.LastName,
		FieldVCardOrg:       i.Org,
		FieldVCardTitle:     i.Title,
		FieldVCardPhone:     i.Phone,
		FieldVCardEmail:     i.Email,
		FieldVCardURL:       i.URL,
		FieldVCardAddress:   i.Address,
		FieldVCardNote:      i.Note,
	})
}

func (i UPIInput) Fields() map[string]string {
	return compact(map[string]string{
		FieldUPIID:     i.ID,
		FieldUPIName:   i.Name,
		FieldUPIAmount: i.Amount,
		FieldUPINote:   i.Note,
	})
}

func (i AudioImageInput) Fields() map[string]string {
	return compact(map[string]string{
		FieldAudioURL: i.AudioURL,
		FieldImageURL: i.ImageURL,
	})
}

// NewInput builds the variant for t from a flat field mapping.
// Unknown keys are ignored so a mapping may carry fields of other types.
func NewInput(t QRType, fields map[string]string) (Input, error) {
	get := func(key string) string { return fields[key] }

	switch t {
	case TypeURL:
		return URLInput{URL: get(FieldURL)}, nil
	case TypeText:
		return TextInput{Text: get(FieldText)}, nil
	case TypeEmail:
		return EmailInput{
			Address: get(FieldEmail),
			Subject: get(FieldEmailSubject),
			Body:    get(FieldEmailBody),
		}, nil
	case TypePhone:
		return PhoneInput{Number: get(FieldPhone)}, nil
	case TypeWhatsApp:
		return WhatsAppInput{Phone: get(FieldWhatsAppPhone), Message: get(FieldWhatsAppMessage)}, nil
	case TypeSMS:
		return SMSInput{Phone: get(FieldSMSPhone), Message: get(FieldSMSMessage)}, nil
	case TypeLocation:
		return LocationInput{Latitude: get(FieldLatitude), Longitude: get(FieldLongitude)}, nil
	case TypeEvent:
		return EventInput{
			Summary:     get(FieldEventSummary),
			Start:       get(FieldEventStart),
			End:         get(FieldEventEnd),
			Location:    get(FieldEventLocation),
			Description: get(FieldEventDescription),
		}, nil
	case TypeWiFi:
		hidden := false
		if raw := strings.TrimSpace(get(FieldWiFiHidden)); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid %s value %q: %w", FieldWiFiHidden, raw, err)
			}
			hidden = v
		}
		return WiFiInput{
			SSID:       get(FieldWiFiSSID),
			Password:   get(FieldWiFiPassword),
			Encryption: get(FieldWiFiEncryption),
			Hidden:     hidden,
		}, nil
	case TypeVCard:
		return VCardInput{
			FirstName: get(FieldVCardFirstName),
			LastName:  get(FieldVCardLastName),
			Org:       get(FieldVCardOrg),
			Title:     get(FieldVCardTitle),
			Phone:     get(FieldVCardPhone),
			Email:     get(FieldVCardEmail),
			URL:       get(FieldVCardURL),
			Address:   get(FieldVCardAddress),
			Note:      get(FieldVCardNote),
		}, nil
	case TypeUPI:
		return UPIInput{
			ID:     get(FieldUPIID),
			Name:   get(FieldUPIName),
			Amount: get(FieldUPIAmount),
			Note:   get(FieldUPINote),
		}, nil
	case TypeAudioImage:
		return AudioImageInput{AudioURL: get(FieldAudioURL), ImageURL: get(FieldImageURL)}, nil
	default:
		return nil, fmt.Errorf("unknown QR type: %q", t)
	}
}

// MergeFields returns a copy of base with updates applied.
// An empty update value removes the key.
func MergeFields(base, updates map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(updates))
	maps.Copy(merged, base)
	for k, v := range updates {
		if v == "" {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}
	return merged
}

func compact(fields map[string]string) map[string]string {
	for k, v := range fields {
		if v == "" {
			delete(fields, k)
		}
	}
	return fields
}
