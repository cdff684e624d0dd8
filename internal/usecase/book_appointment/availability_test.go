package book_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VetBookingService/internal/domain"
	"github.com/m04kA/VetBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/VetBookingService/pkg/types"
)

// ListOccupiedTimes отдает журнал резолверу свободных слотов
func (l *memLedger) ListOccupiedTimes(_ context.Context, vetID int64, date time.Time) ([]types.TimeString, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	day := date.Format(domain.DateFormat)
	var out []types.TimeString
	for key := range l.active {
		if key.vetID == vetID && key.date == day {
			out = append(out, key.start)
		}
	}
	return out, nil
}

func TestOfferedSlotsAreBookableAndCancelledSlotReappears(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7)

	tmpl := domain.NewDefaultTemplate(vetID)
	for i := range tmpl.Days {
		tmpl.Days[i] = domain.DaySchedule{StartTime: "09:00", EndTime: "12:00", SlotDurationMinutes: 30, BreakIntervalMinutes: 5}
	}
	schedule := memSchedule{tmpl}
	vets := memVets{settings: map[domain.AppointmentType]domain.AppointmentTypeSetting{
		domain.TypePhysical: {VetID: vetID, Type: domain.TypePhysical, Fee: 45, Enabled: true},
	}}
	ledger := newLedger()

	booking := NewUseCase(vets, schedule, ledger, &stubGateway{}, inlineTx{},
		&recordingMetrics{outcomes: map[string]int{}}, time.UTC, nopLogger{})
	booking.timeProvider = fixedClock(now)
	availability := get_available_slots.NewUseCase(vets, schedule, ledger, nil, time.UTC, nopLogger{})

	free := func() []types.TimeString {
		resp, err := availability.Execute(ctx, &get_available_slots.Request{VetID: vetID, Date: date})
		require.NoError(t, err)
		out := make([]types.TimeString, 0, len(resp.Slots))
		for _, s := range resp.Slots {
			out = append(out, s.StartTime)
		}
		return out
	}

	offered := free()
	require.Equal(t, []types.TimeString{"09:00", "09:35", "10:10", "10:45", "11:20"}, offered)

	ids := make(map[types.TimeString]uuid.UUID, len(offered))
	for i, start := range offered {
		req := request(date, string(start))
		req.UserID = int64(100 + i)
		resp, err := booking.Execute(ctx, req)
		require.NoError(t, err, start)
		ids[start] = resp.Appointment.ID
	}
	assert.Empty(t, free())

	require.NoError(t, ledger.Cancel(ctx, ids["10:10"], "changed plans"))
	assert.Equal(t, []types.TimeString{"10:10"}, free())

	_, err := booking.Execute(ctx, request(date, "10:10"))
	assert.NoError(t, err)
	assert.Empty(t, free())
}
