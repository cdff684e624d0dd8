package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/VetBookingService/pkg/types"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentType represents the kind of visit; each vet sets its own fee and toggle per type
type AppointmentType string

const (
	TypeOnline      AppointmentType = "online"
	TypePhysical    AppointmentType = "physical"
	TypeEmergency   AppointmentType = "emergency"
	TypeHomeService AppointmentType = "home_service"
)

// AllAppointmentTypes lists every supported appointment type
var AllAppointmentTypes = []AppointmentType{
	TypeOnline,
	TypePhysical,
	TypeEmergency,
	TypeHomeService,
}

// appointmentTypeAliases maps camelCase client spellings to stored values.
var appointmentTypeAliases = map[string]AppointmentType{
	"homeService": TypeHomeService,
}

// ParseAppointmentType normalizes a client-supplied type name.
// Both "home_service" and "homeService" yield TypeHomeService; unknown names
// are returned as is and fail Valid.
func ParseAppointmentType(raw string) AppointmentType {
	if t, ok := appointmentTypeAliases[raw]; ok {
		return t
	}
	return AppointmentType(raw)
}

// Valid reports whether t is a known appointment type
func (t AppointmentType) Valid() bool {
	for _, known := range AllAppointmentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known status
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CustomerInfo is the contact and pet data captured at booking time
type CustomerInfo struct {
	Name       string
	Phone      string
	Email      string
	PetName    string
	PetSpecies string
	Notes      *string
}

// Appointment is a booked slot with a vet
type Appointment struct {
	ID              uuid.UUID
	VetID           int64
	UserID          int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Type            AppointmentType
	Status          AppointmentStatus
	Fee             float64

	PaymentStatus    bool
	PaymentReference *string

	Customer CustomerInfo

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsTerminal returns true if no further transitions are possible
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted
}

// CanTransitionTo checks the status machine:
// pending -> confirmed | cancelled, confirmed -> completed | cancelled.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch a.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.CanTransitionTo(StatusCancelled)
}

// IsParticipant returns true if userID is the client or the vet of the appointment
func (a *Appointment) IsParticipant(userID int64) bool {
	return a.UserID == userID || a.VetID == userID
}

// AppointmentsFilter narrows a vet's appointment listing.
type AppointmentsFilter struct {
	VetID           int64              // required
	StartDate       *time.Time         // inclusive
	EndDate         *time.Time         // inclusive
	Status          *AppointmentStatus // nil means any
	IncludeInactive bool               // include cancelled
}
