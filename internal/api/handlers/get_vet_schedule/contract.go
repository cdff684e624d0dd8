package get_vet_schedule

import (
	"context"

	"github.com/m04kA/VetBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetTemplate(ctx context.Context, vetID int64) (*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
