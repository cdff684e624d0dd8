package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/VetBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/VetBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/VetBookingService/internal/service/appointments/models"
)

// Service сервис для работы с записями на прием
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID.
// Видеть запись могут только клиент и врач
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for user=%d", id, userID)

	appt, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !appt.IsParticipant(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt), nil
}

// GetUserAppointments получает историю записей пользователя, опционально по статусу
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%d by user=%d", req.UserID, req.ActorID)

	if req.ActorID != req.UserID {
		s.logger.Warn("GetUserAppointments: user=%d tried to read appointments of user=%d", req.ActorID, req.UserID)
		return nil, ErrAccessDenied
	}

	var status *domain.AppointmentStatus
	if req.Status != nil {
		st, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserAppointments: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &st
	}

	appointments, err := s.appointmentRepo.GetByUserID(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: fetched %d appointments for user=%d", len(appointments), req.UserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetVetAppointments получает записи врача с фильтрацией по периоду и статусу.
// Доступно только самому врачу
func (s *Service) GetVetAppointments(ctx context.Context, req *models.GetVetAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetVetAppointments: fetching appointments for vet=%d by user=%d", req.VetID, req.ActorID)

	if req.ActorID != req.VetID {
		s.logger.Warn("GetVetAppointments: user=%d is not vet=%d", req.ActorID, req.VetID)
		return nil, ErrAccessDenied
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVetAppointments: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	appointments, err := s.appointmentRepo.GetByVetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVetAppointments: repository error for vet=%d: %v", req.VetID, err)
		return nil, fmt.Errorf("%w: GetVetAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVetAppointments: fetched %d appointments for vet=%d", len(appointments), req.VetID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись и освобождает слот.
// Отменить может клиент или врач. Повторная отмена ничего не делает
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%s by user=%d", id, req.UserID)

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	appt, err := s.load(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if !appt.IsParticipant(req.UserID) {
		s.logger.Warn("Cancel: access denied for user=%d to appointment id=%s", req.UserID, id)
		return nil, ErrAccessDenied
	}

	return s.cancel(ctx, "Cancel", appt, req.Reason)
}

// UpdateStatus меняет статус записи по инициативе врача:
// confirmed -> completed, pending|confirmed -> cancelled.
// Подтверждение (pending -> confirmed) происходит только через оплату
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%s to status=%s by user=%d", id, req.Status, req.UserID)

	next, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	appt, err := s.load(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	if appt.VetID != req.UserID {
		s.logger.Warn("UpdateStatus: user=%d is not vet of appointment id=%s", req.UserID, id)
		return nil, ErrAccessDenied
	}

	switch next {
	case domain.StatusCancelled:
		return s.cancel(ctx, "UpdateStatus", appt, req.Reason)
	case domain.StatusCompleted:
		if !appt.CanTransitionTo(next) {
			s.logger.Warn("UpdateStatus: appointment id=%s cannot move %s -> %s", id, appt.Status, next)
			return nil, ErrInvalidTransition
		}
		err := s.appointmentRepo.UpdateStatus(ctx, id, []domain.AppointmentStatus{domain.StatusConfirmed}, next)
		if err != nil {
			return nil, s.mapWriteError("UpdateStatus", id, err)
		}
	default:
		s.logger.Warn("UpdateStatus: status=%s cannot be set by vet", next)
		return nil, ErrInvalidTransition
	}

	s.logger.Info("UpdateStatus: appointment id=%s is now %s", id, next)
	return s.reload(ctx, "UpdateStatus", id)
}

// ConfirmPayment переводит запись pending -> confirmed после оплаты.
// Повторное подтверждение той же записи ничего не делает
func (s *Service) ConfirmPayment(ctx context.Context, id uuid.UUID, reference string) error {
	s.logger.Info("ConfirmPayment: appointment id=%s reference=%s", id, reference)

	appt, err := s.load(ctx, "ConfirmPayment", id)
	if err != nil {
		return err
	}

	if appt.PaymentStatus {
		s.logger.Info("ConfirmPayment: appointment id=%s already paid", id)
		return nil
	}
	if !appt.CanTransitionTo(domain.StatusConfirmed) {
		s.logger.Warn("ConfirmPayment: appointment id=%s is %s, payment cannot be applied", id, appt.Status)
		return ErrInvalidTransition
	}

	if err := s.appointmentRepo.ConfirmPayment(ctx, id, reference); err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusConflict) {
			current, loadErr := s.load(ctx, "ConfirmPayment", id)
			if loadErr == nil && current.PaymentStatus {
				return nil
			}
		}
		return s.mapWriteError("ConfirmPayment", id, err)
	}

	s.logger.Info("ConfirmPayment: appointment id=%s confirmed", id)
	return nil
}

// ExpirePayment отменяет неоплаченную запись, когда шлюз закрыл платежную сессию.
// Для оплаченных и уже завершенных записей ничего не делает
func (s *Service) ExpirePayment(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("ExpirePayment: appointment id=%s", id)

	appt, err := s.load(ctx, "ExpirePayment", id)
	if err != nil {
		return err
	}

	if appt.PaymentStatus || appt.Status != domain.StatusPending {
		s.logger.Info("ExpirePayment: appointment id=%s is %s, nothing to expire", id, appt.Status)
		return nil
	}

	_, err = s.cancel(ctx, "ExpirePayment", appt, domain.ReasonPaymentTimeout)
	return err
}

// ExpireStalePending отменяет неоплаченные записи старше ttl
func (s *Service) ExpireStalePending(ctx context.Context, ttl time.Duration, now time.Time) (int64, error) {
	cutoff := now.Add(-ttl)
	s.logger.Info("ExpireStalePending: cancelling pending appointments created before %s", cutoff.Format(time.RFC3339))

	n, err := s.appointmentRepo.CancelStalePending(ctx, cutoff, domain.ReasonPaymentTimeout)
	if err != nil {
		s.logger.Error("ExpireStalePending: repository error: %v", err)
		return 0, fmt.Errorf("%w: ExpireStalePending - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ExpireStalePending: cancelled %d appointments", n)
	return n, nil
}

// Вспомогательные методы

func (s *Service) cancel(ctx context.Context, op string, appt *domain.Appointment, reason string) (*models.AppointmentResponse, error) {
	if appt.Status == domain.StatusCancelled {
		s.logger.Info("%s: appointment id=%s already cancelled", op, appt.ID)
		return models.FromDomainAppointment(appt), nil
	}
	if !appt.CanBeCancelled() {
		s.logger.Warn("%s: appointment id=%s is %s and cannot be cancelled", op, appt.ID, appt.Status)
		return nil, ErrInvalidTransition
	}

	if err := s.appointmentRepo.Cancel(ctx, appt.ID, reason); err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusConflict) {
			// Запись успели отменить параллельно
			current, loadErr := s.load(ctx, op, appt.ID)
			if loadErr == nil && current.Status == domain.StatusCancelled {
				return models.FromDomainAppointment(current), nil
			}
		}
		return nil, s.mapWriteError(op, appt.ID, err)
	}

	s.logger.Info("%s: appointment id=%s cancelled", op, appt.ID)
	return s.reload(ctx, op, appt.ID)
}

func (s *Service) load(ctx context.Context, op string, id uuid.UUID) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

func (s *Service) reload(ctx context.Context, op string, id uuid.UUID) (*models.AppointmentResponse, error) {
	appt, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointment(appt), nil
}

func (s *Service) mapWriteError(op string, id uuid.UUID, err error) error {
	switch {
	case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
		return ErrAppointmentNotFound
	case errors.Is(err, appointmentRepo.ErrStatusConflict):
		s.logger.Warn("%s: appointment id=%s changed status concurrently", op, id)
		return ErrInvalidTransition
	default:
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
