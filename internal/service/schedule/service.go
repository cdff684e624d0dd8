package schedule

import (
	"context"
	"fmt"

	"github.com/m04kA/VetBookingService/internal/domain"
	"github.com/m04kA/VetBookingService/internal/service/schedule/models"
)

// Service сервис шаблонов расписания врачей
type Service struct {
	scheduleRepo ScheduleRepository
	vetRepo      VetRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, vetRepo VetRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		vetRepo:      vetRepo,
		logger:       logger,
	}
}

// GetTemplate получает недельный шаблон врача.
// Публичный метод, дни без записи в БД отдаются со значениями по умолчанию
func (s *Service) GetTemplate(ctx context.Context, vetID int64) (*models.TemplateResponse, error) {
	s.logger.Info("GetTemplate: fetching template for vet=%d", vetID)

	if err := s.ensureVetExists(ctx, "GetTemplate", vetID); err != nil {
		return nil, err
	}

	template, err := s.scheduleRepo.GetTemplate(ctx, vetID)
	if err != nil {
		s.logger.Error("GetTemplate: repository error for vet=%d: %v", vetID, err)
		return nil, fmt.Errorf("%w: GetTemplate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTemplate(template), nil
}

// SetDay полностью перезаписывает один день недели в шаблоне.
// Доступно только самому врачу
func (s *Service) SetDay(ctx context.Context, req *models.SetDayRequest) (*models.DayResponse, error) {
	s.logger.Info("SetDay: vet=%d weekday=%s by user=%d", req.VetID, req.Weekday, req.UserID)

	// 1. Проверяем права доступа
	if req.UserID != req.VetID {
		s.logger.Warn("SetDay: user=%d is not vet=%d", req.UserID, req.VetID)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем день недели и сам день
	weekday, err := domain.ParseWeekday(req.Weekday)
	if err != nil {
		s.logger.Warn("SetDay: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	day, err := normalizeDay(req.ToDomainDay())
	if err != nil {
		s.logger.Warn("SetDay: validation failed for vet=%d: %v", req.VetID, err)
		return nil, err
	}

	// 3. Проверяем существование врача
	if err := s.ensureVetExists(ctx, "SetDay", req.VetID); err != nil {
		return nil, err
	}

	// 4. Сохраняем
	if err := s.scheduleRepo.SetDay(ctx, req.VetID, weekday, day); err != nil {
		s.logger.Error("SetDay: repository error for vet=%d: %v", req.VetID, err)
		return nil, fmt.Errorf("%w: SetDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetDay: vet=%d %s updated", req.VetID, weekday)
	resp := models.FromDomainDay(weekday, day)
	return &resp, nil
}

func (s *Service) ensureVetExists(ctx context.Context, op string, vetID int64) error {
	exists, err := s.vetRepo.Exists(ctx, vetID)
	if err != nil {
		s.logger.Error("%s: failed to check vet=%d: %v", op, vetID, err)
		return fmt.Errorf("%w: %s - check vet: %v", ErrInternal, op, err)
	}
	if !exists {
		s.logger.Warn("%s: vet=%d not found", op, vetID)
		return ErrVetNotFound
	}
	return nil
}
