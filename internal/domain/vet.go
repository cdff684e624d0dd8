package domain

import "time"

// Vet is a veterinarian account able to receive appointments.
// The ID is the vet's user ID from the account system.
type Vet struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppointmentTypeSetting is a vet's fee and on/off toggle for one appointment type
type AppointmentTypeSetting struct {
	VetID   int64
	Type    AppointmentType
	Fee     float64
	Enabled bool
}

// DefaultAppointmentTypeSettings returns all types disabled with zero fee
func DefaultAppointmentTypeSettings(vetID int64) []AppointmentTypeSetting {
	settings := make([]AppointmentTypeSetting, 0, len(AllAppointmentTypes))
	for _, t := range AllAppointmentTypes {
		settings = append(settings, AppointmentTypeSetting{VetID: vetID, Type: t})
	}
	return settings
}
