package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VetBookingService/internal/domain"
	"github.com/m04kA/VetBookingService/internal/service/schedule/models"
	"github.com/m04kA/VetBookingService/pkg/types"
)

type memSchedule struct {
	templates map[int64]*domain.WeeklyTemplate
	err       error
}

func (m *memSchedule) GetTemplate(_ context.Context, vetID int64) (*domain.WeeklyTemplate, error) {
	if m.err != nil {
		return nil, m.err
	}
	if t, ok := m.templates[vetID]; ok {
		return t, nil
	}
	return domain.NewDefaultTemplate(vetID), nil
}

func (m *memSchedule) SetDay(_ context.Context, vetID int64, weekday domain.Weekday, day domain.DaySchedule) error {
	if m.err != nil {
		return m.err
	}
	t, ok := m.templates[vetID]
	if !ok {
		t = domain.NewDefaultTemplate(vetID)
		m.templates[vetID] = t
	}
	t.Days[weekday] = day
	return nil
}

type memVets map[int64]bool

func (m memVets) Exists(_ context.Context, id int64) (bool, error) {
	return m[id], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService() (*Service, *memSchedule) {
	store := &memSchedule{templates: map[int64]*domain.WeeklyTemplate{}}
	return NewService(store, memVets{7: true}, nopLogger{}), store
}

func TestGetTemplateUnknownVet(t *testing.T) {
	svc, _ := newService()

	_, err := svc.GetTemplate(context.Background(), 8)
	assert.ErrorIs(t, err, ErrVetNotFound)
}

func TestGetTemplateReturnsSevenDays(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.GetTemplate(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, resp.Days, domain.DaysInWeek)
	assert.Equal(t, "monday", resp.Days[0].Weekday)
	assert.Equal(t, "sunday", resp.Days[6].Weekday)
	assert.False(t, resp.Days[0].IsWorkingDay)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.Days[0].SlotDurationMinutes)
	assert.Nil(t, resp.Days[0].StartTime)
}

func TestSetDayNormalizesAndStores(t *testing.T) {
	svc, store := newService()

	resp, err := svc.SetDay(context.Background(), &models.SetDayRequest{
		UserID: 7, VetID: 7, Weekday: "Wednesday",
		StartTime: "9:00", EndTime: "17:30", SlotDurationMinutes: 45, BreakIntervalMinutes: 15,
	})
	require.NoError(t, err)

	assert.True(t, resp.IsWorkingDay)
	require.NotNil(t, resp.StartTime)
	assert.Equal(t, "09:00", *resp.StartTime)
	assert.Equal(t, types.TimeString("09:00"), store.templates[7].Day(domain.Wednesday).StartTime)
	assert.Equal(t, 45, store.templates[7].Day(domain.Wednesday).SlotDurationMinutes)
}

func TestSetDayDayOff(t *testing.T) {
	svc, store := newService()

	_, err := svc.SetDay(context.Background(), &models.SetDayRequest{
		UserID: 7, VetID: 7, Weekday: "sunday", SlotDurationMinutes: 30, BreakIntervalMinutes: 5,
	})

	require.NoError(t, err)
	assert.False(t, store.templates[7].Day(domain.Sunday).IsWorkingDay())
}

func TestSetDayValidation(t *testing.T) {
	tests := []struct {
		name string
		req  models.SetDayRequest
	}{
		{name: "only start", req: models.SetDayRequest{StartTime: "09:00", SlotDurationMinutes: 30}},
		{name: "start after end", req: models.SetDayRequest{StartTime: "18:00", EndTime: "09:00", SlotDurationMinutes: 30}},
		{name: "start equals end", req: models.SetDayRequest{StartTime: "09:00", EndTime: "09:00", SlotDurationMinutes: 30}},
		{name: "malformed time", req: models.SetDayRequest{StartTime: "9am", EndTime: "18:00", SlotDurationMinutes: 30}},
		{name: "zero duration", req: models.SetDayRequest{StartTime: "09:00", EndTime: "18:00"}},
		{name: "negative break", req: models.SetDayRequest{StartTime: "09:00", EndTime: "18:00", SlotDurationMinutes: 30, BreakIntervalMinutes: -5}},
		{name: "unknown weekday", req: models.SetDayRequest{Weekday: "funday", StartTime: "09:00", EndTime: "18:00", SlotDurationMinutes: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService()
			req := tt.req
			req.UserID, req.VetID = 7, 7
			if req.Weekday == "" {
				req.Weekday = "monday"
			}

			_, err := svc.SetDay(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidTemplate)
		})
	}
}

func TestSetDayAccessDenied(t *testing.T) {
	svc, _ := newService()

	_, err := svc.SetDay(context.Background(), &models.SetDayRequest{
		UserID: 100, VetID: 7, Weekday: "monday", SlotDurationMinutes: 30,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSetDayRepositoryError(t *testing.T) {
	svc, store := newService()
	store.err = errors.New("db down")

	_, err := svc.SetDay(context.Background(), &models.SetDayRequest{
		UserID: 7, VetID: 7, Weekday: "monday", SlotDurationMinutes: 30,
	})
	assert.ErrorIs(t, err, ErrInternal)
}
