package vets

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/m04kA/VetBookingService/internal/domain"
	vetRepo "github.com/m04kA/VetBookingService/internal/infra/storage/vet"
	"github.com/m04kA/VetBookingService/internal/service/vets/models"
)

// Service сервис врачей и их типов приема
type Service struct {
	vetRepo      VetRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса врачей
func NewService(
	vetRepo VetRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		vetRepo:      vetRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Register регистрирует врача и заводит ему шаблон расписания и типы приема по умолчанию.
// Повторный вызов для того же врача возвращает существующую запись
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.VetResponse, error) {
	s.logger.Info("Register: vet=%d", req.VetID)

	name := strings.TrimSpace(req.Name)
	if req.VetID <= 0 {
		return nil, fmt.Errorf("%w: vetId must be positive", ErrInvalidInput)
	}
	if name == "" || len(name) > domain.MaxCustomerFieldLength {
		return nil, fmt.Errorf("%w: name is required and must be at most %d characters",
			ErrInvalidInput, domain.MaxCustomerFieldLength)
	}

	var (
		vet      *domain.Vet
		settings []domain.AppointmentTypeSetting
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		vet, err = s.vetRepo.Create(ctx, &domain.Vet{ID: req.VetID, Name: name})
		if err != nil {
			return err
		}
		if err := s.scheduleRepo.InitDefaults(ctx, vet.ID); err != nil {
			return err
		}
		if err := s.vetRepo.InitAppointmentTypes(ctx, vet.ID); err != nil {
			return err
		}
		settings, err = s.vetRepo.GetAppointmentTypes(ctx, vet.ID)
		return err
	})
	if err != nil {
		s.logger.Error("Register: failed to register vet=%d: %v", req.VetID, err)
		return nil, fmt.Errorf("%w: Register - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("Register: vet=%d registered", vet.ID)
	return models.FromDomainVet(vet, settings), nil
}

// UpdateAppointmentType меняет стоимость и доступность типа приема.
// Доступно только самому врачу
func (s *Service) UpdateAppointmentType(ctx context.Context, req *models.UpdateAppointmentTypeRequest) (*models.AppointmentTypeResponse, error) {
	s.logger.Info("UpdateAppointmentType: vet=%d type=%s by user=%d", req.VetID, req.Type, req.UserID)

	if req.UserID != req.VetID {
		s.logger.Warn("UpdateAppointmentType: user=%d is not vet=%d", req.UserID, req.VetID)
		return nil, ErrAccessDenied
	}

	appointmentType := domain.ParseAppointmentType(req.Type)
	if !appointmentType.Valid() {
		return nil, fmt.Errorf("%w: unknown appointment type %q", ErrInvalidInput, req.Type)
	}
	if req.Fee < 0 || math.IsNaN(req.Fee) || math.IsInf(req.Fee, 0) {
		return nil, fmt.Errorf("%w: fee must be a non-negative number", ErrInvalidInput)
	}

	if _, err := s.vetRepo.GetByID(ctx, req.VetID); err != nil {
		if errors.Is(err, vetRepo.ErrVetNotFound) {
			s.logger.Warn("UpdateAppointmentType: vet=%d not found", req.VetID)
			return nil, ErrVetNotFound
		}
		s.logger.Error("UpdateAppointmentType: failed to get vet=%d: %v", req.VetID, err)
		return nil, fmt.Errorf("%w: UpdateAppointmentType - get vet: %v", ErrInternal, err)
	}

	setting := domain.AppointmentTypeSetting{
		VetID:   req.VetID,
		Type:    appointmentType,
		Fee:     req.Fee,
		Enabled: req.Enabled,
	}
	if err := s.vetRepo.UpsertAppointmentType(ctx, setting); err != nil {
		s.logger.Error("UpdateAppointmentType: repository error for vet=%d: %v", req.VetID, err)
		return nil, fmt.Errorf("%w: UpdateAppointmentType - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainSetting(setting)
	return &resp, nil
}
