package models

import "time"

// MaxHistoryEntries максимальное количество записей в истории.
// При превышении удаляются самые старые записи.
const MaxHistoryEntries = 50

// HistoryEntry представляет сохраненную конфигурацию QR-кода.
// Input хранится как плоская карта полей, Style без payload,
// payload является производными данными и пересчитывается при загрузке.
type HistoryEntry struct {
	CreatedAt   time.Time         `json:"created_at"`  // CreatedAt время сохранения
	Input       map[string]string `json:"input"`       // Input снимок полей ввода
	ID          string            `json:"id"`          // ID уникальный идентификатор (UUID)
	Type        QRType            `json:"type"`        // Type тип QR-кода
	Label       string            `json:"label"`       // Label пользовательская метка
	Fingerprint string            `json:"fingerprint"` // Fingerprint хеш конфигурации для поиска дубликатов
	Preview     []byte            `json:"preview"`     // Preview PNG миниатюра
	Style       StyleOptions      `json:"style"`       // Style снимок стиля без Data
}

// DisplayName returns the label or a fallback derived from the type.
func (e *HistoryEntry) DisplayName() string {
	if e.Label != "" {
		return e.Label
	}
	return string(e.Type) + " QR"
}

// Clone создает глубокую копию записи истории
func (e *HistoryEntry) Clone() *HistoryEntry {
	input := make(map[string]string, len(e.Input))
	for k, v := range e.Input {
		input[k] = v
	}

	return &HistoryEntry{
		CreatedAt:   e.CreatedAt,
		Input:       input,
		ID:          e.ID,
		Type:        e.Type,
		Label:       e.Label,
		Fingerprint: e.Fingerprint,
		Preview:     append([]byte(nil), e.Preview...),
		Style:       e.Style.Clone(),
	}
}
