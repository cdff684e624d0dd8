package domain

import "github.com/m04kA/VetBookingService/pkg/types"

// DaySchedule is one weekday entry of a vet's availability template.
// Empty StartTime and EndTime mean the vet does not work that day.
type DaySchedule struct {
	StartTime            types.TimeString
	EndTime              types.TimeString
	SlotDurationMinutes  int
	BreakIntervalMinutes int
}

// DefaultDaySchedule is the entry every weekday gets when a vet is provisioned.
func DefaultDaySchedule() DaySchedule {
	return DaySchedule{
		SlotDurationMinutes:  DefaultSlotDurationMinutes,
		BreakIntervalMinutes: DefaultBreakIntervalMinutes,
	}
}

// IsWorkingDay returns true if both bounds are set.
func (d DaySchedule) IsWorkingDay() bool {
	return !d.StartTime.IsZero() && !d.EndTime.IsZero()
}

// WeeklyTemplate holds exactly one DaySchedule per weekday.
type WeeklyTemplate struct {
	VetID int64
	Days  [DaysInWeek]DaySchedule
}

// NewDefaultTemplate builds a template with defaults for all seven days.
func NewDefaultTemplate(vetID int64) *WeeklyTemplate {
	t := &WeeklyTemplate{VetID: vetID}
	for i := range t.Days {
		t.Days[i] = DefaultDaySchedule()
	}
	return t
}

// Day returns the schedule for weekday w.
func (t *WeeklyTemplate) Day(w Weekday) DaySchedule {
	return t.Days[w]
}
