package schedule

import (
	"fmt"

	"github.com/m04kA/VetBookingService/internal/domain"
	"github.com/m04kA/VetBookingService/pkg/types"
)

// normalizeDay проверяет день шаблона и приводит время к виду "HH:MM".
// Генератор слотов рассчитывает на уже проверенные данные
func normalizeDay(day domain.DaySchedule) (domain.DaySchedule, error) {
	if day.StartTime.IsZero() != day.EndTime.IsZero() {
		return day, fmt.Errorf("%w: startTime and endTime must be set together", ErrInvalidTemplate)
	}

	if day.IsWorkingDay() {
		start, err := types.NewTimeStringFromString(day.StartTime.String())
		if err != nil {
			return day, fmt.Errorf("%w: startTime: %v", ErrInvalidTemplate, err)
		}
		end, err := types.NewTimeStringFromString(day.EndTime.String())
		if err != nil {
			return day, fmt.Errorf("%w: endTime: %v", ErrInvalidTemplate, err)
		}
		if !start.IsBefore(end) {
			return day, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidTemplate)
		}
		day.StartTime, day.EndTime = start, end
	}

	if day.SlotDurationMinutes < domain.MinSlotDurationMinutes || day.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return day, fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidTemplate, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if day.BreakIntervalMinutes < 0 || day.BreakIntervalMinutes > domain.MaxBreakIntervalMinutes {
		return day, fmt.Errorf("%w: breakIntervalMinutes must be between 0 and %d",
			ErrInvalidTemplate, domain.MaxBreakIntervalMinutes)
	}

	return day, nil
}
