package schedule

import (
	"context"

	"github.com/m04kA/VetBookingService/internal/domain"
)

// ScheduleRepository интерфейс хранилища шаблонов расписания
type ScheduleRepository interface {
	GetTemplate(ctx context.Context, vetID int64) (*domain.WeeklyTemplate, error)
	SetDay(ctx context.Context, vetID int64, weekday domain.Weekday, day domain.DaySchedule) error
}

// VetRepository интерфейс репозитория врачей
type VetRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
