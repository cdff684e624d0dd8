package set_vet_schedule

import (
	"context"

	"github.com/m04kA/VetBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	SetDay(ctx context.Context, req *models.SetDayRequest) (*models.DayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
