package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/VetBookingService/internal/domain"
	"github.com/m04kA/VetBookingService/internal/slots"
	"github.com/m04kA/VetBookingService/pkg/types"
)

// UseCase use case для получения свободных слотов врача на дату
type UseCase struct {
	vetRepo         VetRepository
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	metrics         Metrics
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// location - рабочая таймзона сервиса, в ней определяется "сегодня"
func NewUseCase(
	vetRepo VetRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		vetRepo:         vetRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		metrics:         metrics,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов.
// Результат только для чтения: повторный вызов без новых записей дает тот же список
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: vet=%d, date=%s", req.VetID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.VetID <= 0 || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: vetId and date are required", ErrInvalidInput)
	}

	// 2. Получаем текущее время в рабочей таймзоне
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Проверяем существование врача
	exists, err := uc.vetRepo.Exists(ctx, req.VetID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check vet=%d: %v", req.VetID, err)
		return nil, fmt.Errorf("%w: failed to check vet: %v", ErrInternal, err)
	}
	if !exists {
		uc.logger.Warn("GetAvailableSlots: vet=%d not found", req.VetID)
		return nil, ErrVetNotFound
	}

	resp := &Response{VetID: req.VetID, Date: req.Date, Slots: []Slot{}}

	// 4. Получаем шаблон и день недели
	template, err := uc.scheduleRepo.GetTemplate(ctx, req.VetID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get template for vet=%d: %v", req.VetID, err)
		return nil, fmt.Errorf("%w: failed to get template: %v", ErrInternal, err)
	}
	day := template.Day(domain.WeekdayOf(req.Date))

	// 5. Генерируем слоты и отсекаем прошедшие
	candidates := slots.Upcoming(slots.Generate(day), req.Date, now)
	if len(candidates) == 0 {
		uc.logger.Info("GetAvailableSlots: no candidate slots for vet=%d on %s", req.VetID, req.Date.Format(domain.DateFormat))
		uc.observe(false)
		return resp, nil
	}

	// 6. Убираем занятые слоты
	occupied, err := uc.appointmentRepo.ListOccupiedTimes(ctx, req.VetID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list occupied slots for vet=%d: %v", req.VetID, err)
		return nil, fmt.Errorf("%w: failed to list occupied slots: %v", ErrInternal, err)
	}

	taken := make(map[types.TimeString]struct{}, len(occupied))
	for _, t := range occupied {
		taken[t] = struct{}{}
	}

	for _, start := range slots.Exclude(candidates, taken) {
		end, err := start.AddMinutes(day.SlotDurationMinutes)
		if err != nil {
			// Слот заканчивается ровно в полночь
			end = "24:00"
		}
		resp.Slots = append(resp.Slots, Slot{
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: day.SlotDurationMinutes,
		})
	}

	uc.logger.Info("GetAvailableSlots: %d free slots for vet=%d on %s",
		len(resp.Slots), req.VetID, req.Date.Format(domain.DateFormat))
	uc.observe(len(resp.Slots) > 0)
	return resp, nil
}

func (uc *UseCase) observe(hasSlots bool) {
	if uc.metrics != nil {
		uc.metrics.ObserveAvailabilityQuery(hasSlots)
	}
}
