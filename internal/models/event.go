package models

import "time"

// EventName имя аналитического события
type EventName string

// EventName константы для событий приложения
const (
	EventGenerate  EventName = "generate"
	EventSave      EventName = "save"
	EventLoad      EventName = "load"
	EventDelete    EventName = "delete"
	EventDuplicate EventName = "duplicate"
	EventClear     EventName = "clear"
	EventLabelEdit EventName = "label_edit"
	EventDownload  EventName = "download"
	EventContact   EventName = "contact"
)

// Event записанное аналитическое событие
type Event struct {
	CreatedAt time.Time         `json:"created_at"`
	Params    map[string]string `json:"params,omitempty"`
	Name      EventName         `json:"name"`
	ID        int64             `json:"id"`
}

// ContactMessage сообщение из формы обратной связи
type ContactMessage struct {
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	ID        int64     `json:"id"`
}
