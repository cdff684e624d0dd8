package vets

import (
	"context"

	"github.com/m04kA/VetBookingService/internal/domain"
)

// VetRepository интерфейс репозитория врачей
type VetRepository interface {
	Create(ctx context.Context, vet *domain.Vet) (*domain.Vet, error)
	GetByID(ctx context.Context, id int64) (*domain.Vet, error)
	GetAppointmentTypes(ctx context.Context, vetID int64) ([]domain.AppointmentTypeSetting, error)
	UpsertAppointmentType(ctx context.Context, setting domain.AppointmentTypeSetting) error
	InitAppointmentTypes(ctx context.Context, vetID int64) error
}

// ScheduleRepository создает шаблон расписания по умолчанию
type ScheduleRepository interface {
	InitDefaults(ctx context.Context, vetID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
