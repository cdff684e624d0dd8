package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/VetBookingService/internal/domain"
	"github.com/m04kA/VetBookingService/pkg/types"
)

// VetRepository интерфейс репозитория врачей
type VetRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// ScheduleRepository интерфейс хранилища шаблонов расписания
type ScheduleRepository interface {
	GetTemplate(ctx context.Context, vetID int64) (*domain.WeeklyTemplate, error)
}

// AppointmentRepository журнал занятых слотов
type AppointmentRepository interface {
	// ListOccupiedTimes возвращает время начала всех неотмененных записей врача на дату
	ListOccupiedTimes(ctx context.Context, vetID int64, date time.Time) ([]types.TimeString, error)
}

// Metrics метрики запросов доступности
type Metrics interface {
	ObserveAvailabilityQuery(hasSlots bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
