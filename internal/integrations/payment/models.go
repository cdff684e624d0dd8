package payment

import "github.com/google/uuid"

// CheckoutRequest данные для создания платежной сессии по записи
type CheckoutRequest struct {
	AppointmentID   uuid.UUID
	VetID           int64
	AppointmentType string
	Amount          float64 // В основной единице валюты
	CustomerEmail   string
	Description     string
}

// Checkout созданная платежная сессия
type Checkout struct {
	SessionID string // Ссылка на платеж, сохраняется в записи
	URL       string // Куда перенаправить клиента
}

// EventKind тип события от платежного шлюза
type EventKind string

const (
	EventPaid    EventKind = "paid"
	EventExpired EventKind = "expired"
)

// Event проверенное событие шлюза по записи
type Event struct {
	Kind          EventKind
	AppointmentID uuid.UUID
	Reference     string
}
