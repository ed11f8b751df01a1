package payload

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/iudanet/linkspark/internal/models"
	"github.com/iudanet/linkspark/internal/validation"
)

var urlSchemes = []string{"http://", "https://", "mailto:", "tel:"}

func formatURL(in models.URLInput) (string, error) {
	raw := strings.TrimSpace(in.URL)
	if raw == "" {
		return "", errIncomplete
	}

	lower := strings.ToLower(raw)
	for _, scheme := range urlSchemes {
		if strings.HasPrefix(lower, scheme) {
			return raw, nil
		}
	}

	// Похоже на домен без схемы: добавляем https://
	if strings.Contains(raw, ".") && !strings.Contains(raw, "://") {
		return "https://" + raw, nil
	}

	return "", invalid(models.FieldURL, "invalid URL %q: use http(s)://, mailto: or tel:, or a domain like example.com", raw)
}

func formatText(in models.TextInput) (string, error) {
	if strings.TrimSpace(in.Text) == "" {
		return "", errIncomplete
	}
	return in.Text, nil
}

func formatEmail(in models.EmailInput) (string, error) {
	addr := strings.TrimSpace(in.Address)
	if addr == "" {
		return "", errIncomplete
	}
	if err := validation.ValidateEmail(addr); err != nil {
		return "", invalid(models.FieldEmail, "%v", err)
	}

	var q queryBuilder
	q.add("subject", in.Subject)
	q.add("body", in.Body)
	return "mailto:" + addr + q.String(), nil
}

func formatPhone(in models.PhoneInput) (string, error) {
	number := strings.TrimSpace(in.Number)
	if number == "" {
		return "", errIncomplete
	}
	return "tel:" + number, nil
}

func formatWhatsApp(in models.WhatsAppInput) (string, error) {
	if strings.TrimSpace(in.Phone) == "" {
		return "", errIncomplete
	}
	number, err := validation.NormalizeWhatsAppNumber(in.Phone)
	if err != nil {
		return "", invalid(models.FieldWhatsAppPhone, "%v", err)
	}

	// wa.me принимает номер только цифрами, без '+'
	digits := strings.ReplaceAll(number, "+", "")

	var q queryBuilder
	q.add("text", in.Message)
	return "https://wa.me/" + digits + q.String(), nil
}

func formatSMS(in models.SMSInput) (string, error) {
	number := strings.TrimSpace(in.Phone)
	if number == "" {
		return "", errIncomplete
	}

	var q queryBuilder
	q.add("body", in.Message)
	return "sms:" + number + q.String(), nil
}

func formatLocation(in models.LocationInput) (string, error) {
	if strings.TrimSpace(in.Latitude) == "" || strings.TrimSpace(in.Longitude) == "" {
		return "", errIncomplete
	}

	lat, err := validation.ParseLatitude(in.Latitude)
	if err != nil {
		return "", invalid(models.FieldLatitude, "%v", err)
	}
	lon, err := validation.ParseLongitude(in.Longitude)
	if err != nil {
		return "", invalid(models.FieldLongitude, "%v", err)
	}

	query := strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
	return "https://www.google.com/maps/search/?api=1&query=" + query, nil
}

// wifiEncryption нормализует режим шифрования
func wifiEncryption(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "WPA", "WPA2", "WPA3":
		return models.WiFiWPA, true
	case "WEP":
		return models.WiFiWEP, true
	case "NONE", "NOPASS", "OPEN":
		return models.WiFiNone, true
	default:
		return "", false
	}
}

func formatWiFi(in models.WiFiInput) (string, error) {
	if in.SSID == "" {
		return "", errIncomplete
	}

	enc, ok := wifiEncryption(in.Encryption)
	if !ok {
		return "", invalid(models.FieldWiFiEncryption, "unknown Wi-Fi encryption %q: use WPA, WEP or None", in.Encryption)
	}

	var b strings.Builder
	if enc == models.WiFiNone {
		b.WriteString("WIFI:T:nopass;S:")
		b.WriteString(escapeWiFi(in.SSID))
		b.WriteString(";")
	} else {
		// Пароль обязателен для защищенных сетей; пока его нет, ждем ввода
		if in.Password == "" {
			return "", errIncomplete
		}
		b.WriteString("WIFI:T:")
		b.WriteString(enc)
		b.WriteString(";S:")
		b.WriteString(escapeWiFi(in.SSID))
		b.WriteString(";P:")
		b.WriteString(escapeWiFi(in.Password))
		b.WriteString(";")
	}
	b.WriteString("H:")
	b.WriteString(strconv.FormatBool(in.Hidden))
	b.WriteString(";;")

	return b.String(), nil
}

func formatVCard(in models.VCardInput) (string, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return "", errIncomplete
	}

	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		fmt.Sprintf("N:%s;%s;;;", escapeText(last), escapeText(first)),
		"FN:" + escapeText(first+" "+last),
	}

	optional := []struct {
		prefix string
		value  string
		suffix string
	}{
		{prefix: "ORG:", value: escapeText(in.Org)},
		{prefix: "TITLE:", value: escapeText(in.Title)},
		{prefix: "TEL:", value: in.Phone},
		{prefix: "EMAIL:", value: in.Email},
		{prefix: "URL:", value: in.URL},
		{prefix: "ADR:;;", value: escapeText(in.Address), suffix: ";;;;"},
		{prefix: "NOTE:", value: escapeText(in.Note)},
	}
	for _, o := range optional {
		value := strings.TrimSpace(o.value)
		if value == "" {
			continue
		}
		lines = append(lines, o.prefix+value+o.suffix)
	}

	lines = append(lines, "END:VCARD")
	return strings.Join(lines, "\n"), nil
}

func formatUPI(in models.UPIInput) (string, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" || strings.TrimSpace(in.Amount) == "" {
		return "", errIncomplete
	}

	if err := validation.ValidateUPIID(id); err != nil {
		return "", invalid(models.FieldUPIID, "%v", err)
	}
	amount, err := validation.ParseAmount(in.Amount)
	if err != nil {
		return "", invalid(models.FieldUPIAmount, "%v", err)
	}

	var q queryBuilder
	q.add("pa", id)
	q.add("pn", strings.TrimSpace(in.Name))
	q.raw("am", strconv.FormatFloat(amount, 'f', 2, 64))
	q.raw("cu", "INR")
	q.add("tn", strings.TrimSpace(in.Note))
	return "upi://pay" + q.String(), nil
}

const giftPageTemplate = `<!DOCTYPE html><html><head><meta charset="utf-8">` +
	`<meta name="viewport" content="width=device-width,initial-scale=1"><title>LinkSpark Gift</title></head>` +
	`<body style="margin:0;min-height:100vh;display:flex;flex-direction:column;align-items:center;justify-content:center;background:#111">` +
	`<img src="%s" alt="Gift" style="max-width:100%%;max-height:80vh">` +
	`<audio src="%s" autoplay controls></audio></body></html>`

// formatAudioImage встраивает медиа целиком в data: URI HTML-страницы.
// Payload получается очень большим и обычно упирается в лимит емкости.
func formatAudioImage(in models.AudioImageInput) (string, error) {
	if in.AudioURL == "" || in.ImageURL == "" {
		return "", errIncomplete
	}
	if !validation.IsDataURL(in.AudioURL, "audio/") {
		return "", invalid(models.FieldAudioURL, "audio must be a data:audio/... URL")
	}
	if !validation.IsDataURL(in.ImageURL, "image/") {
		return "", invalid(models.FieldImageURL, "image must be a data:image/... URL")
	}

	page := fmt.Sprintf(giftPageTemplate, html.EscapeString(in.ImageURL), html.EscapeString(in.AudioURL))
	return "data:text/html," + encodeComponent(page), nil
}
