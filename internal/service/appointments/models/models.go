package models

import (
	"errors"
	"time"

	"github.com/m04kA/VetBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelRequest запрос на отмену записи
type CancelRequest struct {
	UserID int64  `json:"-"`
	Reason string `json:"reason"`
}

// UpdateStatusRequest запрос врача на смену статуса записи
type UpdateStatusRequest struct {
	UserID int64  `json:"-"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"` // Причина, если статус cancelled
}

// GetUserAppointmentsRequest запрос на получение записей пользователя
type GetUserAppointmentsRequest struct {
	ActorID int64   // Кто запрашивает
	UserID  int64   // Чьи записи
	Status  *string // Фильтр по статусу (опционально)
}

// GetVetAppointmentsRequest запрос на получение записей врача
type GetVetAppointmentsRequest struct {
	ActorID         int64
	VetID           int64
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	Status          *string    // Фильтр по статусу (опционально)
	IncludeInactive bool       // Включить отмененные записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetVetAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		VetID:           r.VetID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// CustomerResponse данные клиента и питомца
type CustomerResponse struct {
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	PetName    string  `json:"petName"`
	PetSpecies string  `json:"petSpecies"`
	Notes      *string `json:"notes,omitempty"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              string  `json:"id"`
	VetID           int64   `json:"vetId"`
	UserID          int64   `json:"userId"`
	Date            string  `json:"date"`      // "2026-10-20"
	StartTime       string  `json:"startTime"` // "09:35"
	DurationMinutes int     `json:"durationMinutes"`
	Type            string  `json:"type"`
	Status          string  `json:"status"`
	Fee             float64 `json:"fee"`
	PaymentStatus   bool    `json:"paymentStatus"`

	Customer CustomerResponse `json:"customer"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:              a.ID.String(),
		VetID:           a.VetID,
		UserID:          a.UserID,
		Date:            a.Date.Format(domain.DateFormat),
		StartTime:       a.StartTime.String(),
		DurationMinutes: a.DurationMinutes,
		Type:            string(a.Type),
		Status:          string(a.Status),
		Fee:             a.Fee,
		PaymentStatus:   a.PaymentStatus,
		Customer: CustomerResponse{
			Name:       a.Customer.Name,
			Phone:      a.Customer.Phone,
			Email:      a.Customer.Email,
			PetName:    a.Customer.PetName,
			PetSpecies: a.Customer.PetSpecies,
			Notes:      a.Customer.Notes,
		},
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelled := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}
	for _, a := range appointments {
		if item := FromDomainAppointment(a); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}
	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
