package update_appointment_type

import (
	"context"

	"github.com/m04kA/VetBookingService/internal/service/vets/models"
)

type VetService interface {
	UpdateAppointmentType(ctx context.Context, req *models.UpdateAppointmentTypeRequest) (*models.AppointmentTypeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
