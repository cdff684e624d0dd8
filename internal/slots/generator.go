package slots

import (
	"iter"
	"slices"
	"time"

	"github.com/m04kA/VetBookingService/internal/domain"
	"github.com/m04kA/VetBookingService/pkg/types"
)

// Sequence возвращает ленивую последовательность времен начала слотов для одного дня шаблона.
// Слот выдается, пока cursor + duration <= end, затем cursor сдвигается на duration + break.
// Последний неполный слот отбрасывается. Выходной день (пустые границы) дает пустую последовательность.
// Функция чистая: последовательность можно обходить повторно с тем же результатом
func Sequence(day domain.DaySchedule) iter.Seq[types.TimeString] {
	return func(yield func(types.TimeString) bool) {
		start, end, ok := bounds(day)
		if !ok || day.SlotDurationMinutes <= 0 || day.BreakIntervalMinutes < 0 {
			return
		}

		step := day.SlotDurationMinutes + day.BreakIntervalMinutes
		for cursor := start; cursor+day.SlotDurationMinutes <= end; cursor += step {
			slot, err := types.FromMinutes(cursor)
			if err != nil {
				return
			}
			if !yield(slot) {
				return
			}
		}
	}
}

// Generate собирает все слоты дня в срез (в порядке возрастания)
func Generate(day domain.DaySchedule) []types.TimeString {
	result := slices.Collect(Sequence(day))
	if result == nil {
		return []types.TimeString{}
	}
	return result
}

// Contains проверяет, что start входит в слоты, которые генератор выдает для дня
func Contains(day domain.DaySchedule, start types.TimeString) bool {
	for slot := range Sequence(day) {
		if slot == start {
			return true
		}
	}
	return false
}

// Exclude убирает занятые слоты, сохраняя порядок генератора
func Exclude(candidates []types.TimeString, occupied map[types.TimeString]struct{}) []types.TimeString {
	result := make([]types.TimeString, 0, len(candidates))
	for _, slot := range candidates {
		if _, taken := occupied[slot]; !taken {
			result = append(result, slot)
		}
	}
	return result
}

// StartingAfter оставляет только слоты, начинающиеся строго позже now
func StartingAfter(candidates []types.TimeString, now types.TimeString) []types.TimeString {
	result := make([]types.TimeString, 0, len(candidates))
	for _, slot := range candidates {
		if slot.IsAfter(now) {
			result = append(result, slot)
		}
	}
	return result
}

// Upcoming отсекает прошедшие слоты: для даты раньше сегодняшней результат пустой,
// для сегодняшней остаются слоты строго позже now (с точностью до минуты).
// date сравнивается как календарная дата, now должен быть в рабочей таймзоне сервиса
func Upcoming(candidates []types.TimeString, date, now time.Time) []types.TimeString {
	day := civilDate(date)
	today := civilDate(now)

	switch {
	case day.Before(today):
		return []types.TimeString{}
	case day.Equal(today):
		return StartingAfter(candidates, types.NewTimeString(now))
	default:
		return candidates
	}
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// bounds переводит границы дня в минуты; ok=false для выходного или некорректного дня
func bounds(day domain.DaySchedule) (start, end int, ok bool) {
	if !day.IsWorkingDay() {
		return 0, 0, false
	}

	start, err := day.StartTime.Minutes()
	if err != nil {
		return 0, 0, false
	}
	end, err = day.EndTime.Minutes()
	if err != nil {
		return 0, 0, false
	}

	return start, end, start < end
}
