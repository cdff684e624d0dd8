package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/VetBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/VetBookingService/internal/infra/storage/appointment"
	vetRepo "github.com/m04kA/VetBookingService/internal/infra/storage/vet"
	"github.com/m04kA/VetBookingService/internal/integrations/payment"
	"github.com/m04kA/VetBookingService/internal/slots"
	"github.com/m04kA/VetBookingService/pkg/metrics"
	"github.com/m04kA/VetBookingService/pkg/ptr"
	"github.com/m04kA/VetBookingService/pkg/types"
)

// freeReference ссылка на платеж для приема с нулевой стоимостью
const freeReference = "free"

// UseCase use case для записи к врачу
type UseCase struct {
	vetRepo         VetRepository
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	gateway         PaymentGateway
	txManager       TransactionManager
	metrics         Metrics
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	vetRepo VetRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	gateway PaymentGateway,
	txManager TransactionManager,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		vetRepo:         vetRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		gateway:         gateway,
		txManager:       txManager,
		metrics:         metrics,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case записи к врачу.
// Слот повторно проверяется на сервере, а резервирование делается одной условной вставкой:
// из параллельных запросов на один слот успешен ровно один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: user=%d, vet=%d, date=%s, time=%s, type=%s",
		req.UserID, req.VetID, req.Date.Format(domain.DateFormat), req.StartTime, req.Type)

	resp, err := uc.execute(ctx, req)
	uc.observe(req.Type, err)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в рабочей таймзоне
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Проверяем существование врача
	exists, err := uc.vetRepo.Exists(ctx, req.VetID)
	if err != nil {
		uc.logger.Error("BookAppointment: failed to check vet=%d: %v", req.VetID, err)
		return nil, fmt.Errorf("%w: failed to check vet: %v", ErrInternal, err)
	}
	if !exists {
		uc.logger.Warn("BookAppointment: vet=%d not found", req.VetID)
		return nil, ErrVetNotFound
	}

	// 4. Время должно быть одним из слотов генератора на эту дату и еще не начаться
	template, err := uc.scheduleRepo.GetTemplate(ctx, req.VetID)
	if err != nil {
		uc.logger.Error("BookAppointment: failed to get template for vet=%d: %v", req.VetID, err)
		return nil, fmt.Errorf("%w: failed to get template: %v", ErrInternal, err)
	}
	day := template.Day(domain.WeekdayOf(req.Date))

	if !slots.Contains(day, req.StartTime) {
		uc.logger.Warn("BookAppointment: %s is not a slot of vet=%d on %s",
			req.StartTime, req.VetID, req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidSlot
	}
	if len(slots.Upcoming([]types.TimeString{req.StartTime}, req.Date, now)) == 0 {
		uc.logger.Warn("BookAppointment: slot %s %s is in the past", req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, ErrInvalidSlot
	}

	// 5. Проверяем тип приема и резервируем слот
	var created *domain.Appointment
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		setting, err := uc.vetRepo.GetAppointmentType(txCtx, req.VetID, req.Type)
		if err != nil {
			if errors.Is(err, vetRepo.ErrAppointmentTypeNotFound) {
				return ErrServiceUnavailable
			}
			return fmt.Errorf("%w: failed to get appointment type: %v", ErrInternal, err)
		}
		if !setting.Enabled {
			return ErrServiceUnavailable
		}

		appt := &domain.Appointment{
			VetID:           req.VetID,
			UserID:          req.UserID,
			Date:            civilDate(req.Date),
			StartTime:       req.StartTime,
			DurationMinutes: day.SlotDurationMinutes,
			Type:            req.Type,
			Status:          domain.StatusPending,
			Fee:             setting.Fee,
			Customer:        req.Customer,
		}

		created, err = uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return ErrSlotTaken
			}
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrServiceUnavailable):
			uc.logger.Warn("BookAppointment: type=%s is disabled for vet=%d", req.Type, req.VetID)
		case errors.Is(err, ErrSlotTaken):
			uc.logger.Warn("BookAppointment: slot vet=%d %s %s already taken",
				req.VetID, req.Date.Format(domain.DateFormat), req.StartTime)
		default:
			uc.logger.Error("BookAppointment: reservation failed: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("BookAppointment: reserved appointment id=%s", created.ID)

	// 6. Передаем оплату шлюзу
	return uc.handOffPayment(ctx, created)
}

// handOffPayment создает платеж. Если шлюз недоступен, запись отменяется, чтобы освободить слот
func (uc *UseCase) handOffPayment(ctx context.Context, appt *domain.Appointment) (*Response, error) {
	if appt.Fee <= 0 {
		if err := uc.appointmentRepo.ConfirmPayment(ctx, appt.ID, freeReference); err != nil {
			uc.logger.Error("BookAppointment: failed to confirm free appointment id=%s: %v", appt.ID, err)
			return nil, fmt.Errorf("%w: failed to confirm free appointment: %v", ErrInternal, err)
		}
		appt.Status = domain.StatusConfirmed
		appt.PaymentStatus = true
		appt.PaymentReference = ptr.Ptr(freeReference)
		return &Response{Appointment: appt}, nil
	}

	checkout, err := uc.gateway.CreateCheckout(ctx, payment.CheckoutRequest{
		AppointmentID:   appt.ID,
		VetID:           appt.VetID,
		AppointmentType: string(appt.Type),
		Amount:          appt.Fee,
		CustomerEmail:   appt.Customer.Email,
		Description: fmt.Sprintf("Vet appointment (%s) %s %s",
			appt.Type, appt.Date.Format(domain.DateFormat), appt.StartTime),
	})
	if err != nil {
		uc.logger.Error("BookAppointment: payment initiation failed for appointment id=%s: %v", appt.ID, err)
		if cancelErr := uc.appointmentRepo.Cancel(ctx, appt.ID, domain.ReasonPaymentInitiationFailed); cancelErr != nil {
			// Зависшую pending-запись добьет cmd/expire_pending
			uc.logger.Error("BookAppointment: failed to release appointment id=%s: %v", appt.ID, cancelErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
	}

	if err := uc.appointmentRepo.SetPaymentReference(ctx, appt.ID, checkout.SessionID); err != nil {
		// Webhook находит запись по metadata, поэтому бронирование не откатываем
		uc.logger.Warn("BookAppointment: failed to store payment reference for appointment id=%s: %v", appt.ID, err)
	} else {
		appt.PaymentReference = ptr.Ptr(checkout.SessionID)
	}

	uc.logger.Info("BookAppointment: appointment id=%s awaits payment", appt.ID)
	return &Response{Appointment: appt, PaymentURL: ptr.Ptr(checkout.URL)}, nil
}

func (uc *UseCase) observe(appointmentType domain.AppointmentType, err error) {
	if uc.metrics == nil {
		return
	}

	outcome := metrics.BookingCreated
	switch {
	case err == nil:
	case errors.Is(err, ErrSlotTaken):
		outcome = metrics.BookingSlotTaken
	case errors.Is(err, ErrInvalidSlot):
		outcome = metrics.BookingInvalidSlot
	case errors.Is(err, ErrServiceUnavailable):
		outcome = metrics.BookingServiceUnavailable
	case errors.Is(err, ErrPaymentUnavailable):
		outcome = metrics.BookingPaymentFailed
	default:
		outcome = metrics.BookingError
	}
	label := string(appointmentType)
	if !appointmentType.Valid() {
		label = "unknown"
	}
	uc.metrics.ObserveBooking(outcome, label)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
