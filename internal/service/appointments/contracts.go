package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/VetBookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByVetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from []domain.AppointmentStatus, to domain.AppointmentStatus) error
	Cancel(ctx context.Context, id uuid.UUID, reason string) error
	ConfirmPayment(ctx context.Context, id uuid.UUID, reference string) error
	CancelStalePending(ctx context.Context, createdBefore time.Time, reason string) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
