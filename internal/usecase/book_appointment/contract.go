package book_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/VetBookingService/internal/domain"
	"github.com/m04kA/VetBookingService/internal/integrations/payment"
)

// VetRepository интерфейс репозитория врачей
type VetRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
	GetAppointmentType(ctx context.Context, vetID int64, appointmentType domain.AppointmentType) (*domain.AppointmentTypeSetting, error)
}

// ScheduleRepository интерфейс хранилища шаблонов расписания
type ScheduleRepository interface {
	GetTemplate(ctx context.Context, vetID int64) (*domain.WeeklyTemplate, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// Create атомарно вставляет запись; занятый слот дает ErrSlotTaken
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string) error
	SetPaymentReference(ctx context.Context, id uuid.UUID, reference string) error
	ConfirmPayment(ctx context.Context, id uuid.UUID, reference string) error
}

// PaymentGateway платежный шлюз
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, req payment.CheckoutRequest) (*payment.Checkout, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики бронирования
type Metrics interface {
	ObserveBooking(outcome, appointmentType string)
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
