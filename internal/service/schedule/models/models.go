package models

import (
	"github.com/m04kA/VetBookingService/internal/domain"
	"github.com/m04kA/VetBookingService/pkg/types"
)

// Request модели

// SetDayRequest запрос на полную перезапись одного дня недели
type SetDayRequest struct {
	UserID               int64  `json:"-"`
	VetID                int64  `json:"-"`
	Weekday              string `json:"-"`
	StartTime            string `json:"startTime"` // "09:00", пусто - выходной
	EndTime              string `json:"endTime"`
	SlotDurationMinutes  int    `json:"slotDurationMinutes"`
	BreakIntervalMinutes int    `json:"breakIntervalMinutes"`
}

// ToDomainDay конвертирует запрос в день шаблона
func (r *SetDayRequest) ToDomainDay() domain.DaySchedule {
	return domain.DaySchedule{
		StartTime:            types.TimeString(r.StartTime),
		EndTime:              types.TimeString(r.EndTime),
		SlotDurationMinutes:  r.SlotDurationMinutes,
		BreakIntervalMinutes: r.BreakIntervalMinutes,
	}
}

// Response модели

// DayResponse день шаблона
type DayResponse struct {
	Weekday              string  `json:"weekday"`
	IsWorkingDay         bool    `json:"isWorkingDay"`
	StartTime            *string `json:"startTime,omitempty"`
	EndTime              *string `json:"endTime,omitempty"`
	SlotDurationMinutes  int     `json:"slotDurationMinutes"`
	BreakIntervalMinutes int     `json:"breakIntervalMinutes"`
}

// TemplateResponse недельный шаблон врача
type TemplateResponse struct {
	VetID int64         `json:"vetId"`
	Days  []DayResponse `json:"days"`
}

// FromDomainDay конвертирует день шаблона в DTO
func FromDomainDay(weekday domain.Weekday, d domain.DaySchedule) DayResponse {
	resp := DayResponse{
		Weekday:              weekday.String(),
		IsWorkingDay:         d.IsWorkingDay(),
		SlotDurationMinutes:  d.SlotDurationMinutes,
		BreakIntervalMinutes: d.BreakIntervalMinutes,
	}
	if !d.StartTime.IsZero() {
		start := d.StartTime.String()
		resp.StartTime = &start
	}
	if !d.EndTime.IsZero() {
		end := d.EndTime.String()
		resp.EndTime = &end
	}
	return resp
}

// FromDomainTemplate конвертирует шаблон в DTO (дни с понедельника по воскресенье)
func FromDomainTemplate(t *domain.WeeklyTemplate) *TemplateResponse {
	resp := &TemplateResponse{
		VetID: t.VetID,
		Days:  make([]DayResponse, 0, domain.DaysInWeek),
	}
	for i, d := range t.Days {
		resp.Days = append(resp.Days, FromDomainDay(domain.Weekday(i), d))
	}
	return resp
}
