package get_vet_appointments

import (
	"context"

	"github.com/m04kA/VetBookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetVetAppointments(ctx context.Context, req *models.GetVetAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
