package models

import (
	"time"

	"github.com/m04kA/VetBookingService/internal/domain"
)

// RegisterRequest запрос на регистрацию врача от сервиса аккаунтов
type RegisterRequest struct {
	VetID int64  `json:"vetId"`
	Name  string `json:"name"`
}

// UpdateAppointmentTypeRequest запрос на изменение стоимости и доступности типа приема
type UpdateAppointmentTypeRequest struct {
	UserID  int64   `json:"-"`
	VetID   int64   `json:"-"`
	Type    string  `json:"-"`
	Fee     float64 `json:"fee"`
	Enabled bool    `json:"enabled"`
}

// AppointmentTypeResponse настройка типа приема
type AppointmentTypeResponse struct {
	Type    string  `json:"type"`
	Fee     float64 `json:"fee"`
	Enabled bool    `json:"enabled"`
}

// VetResponse врач и его типы приема
type VetResponse struct {
	ID               int64                     `json:"id"`
	Name             string                    `json:"name"`
	AppointmentTypes []AppointmentTypeResponse `json:"appointmentTypes"`
	CreatedAt        time.Time                 `json:"createdAt"`
}

// FromDomainSetting конвертирует настройку типа приема в DTO
func FromDomainSetting(s domain.AppointmentTypeSetting) AppointmentTypeResponse {
	return AppointmentTypeResponse{
		Type:    string(s.Type),
		Fee:     s.Fee,
		Enabled: s.Enabled,
	}
}

// FromDomainVet конвертирует врача в DTO
func FromDomainVet(v *domain.Vet, settings []domain.AppointmentTypeSetting) *VetResponse {
	resp := &VetResponse{
		ID:               v.ID,
		Name:             v.Name,
		AppointmentTypes: make([]AppointmentTypeResponse, 0, len(settings)),
		CreatedAt:        v.CreatedAt,
	}
	for _, s := range settings {
		resp.AppointmentTypes = append(resp.AppointmentTypes, FromDomainSetting(s))
	}
	return resp
}
