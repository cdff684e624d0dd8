package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VetBookingService/internal/usecase/get_available_slots"
)

type fakeUseCase struct {
	got  *get_available_slots.Request
	resp *get_available_slots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error) {
	f.got = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc UseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/vets/{vetId}/available-slots", NewHandler(uc, nopLogger{}).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleReturnsSlots(t *testing.T) {
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &get_available_slots.Response{
		VetID: 7,
		Date:  date,
		Slots: []get_available_slots.Slot{
			{StartTime: "09:00", EndTime: "09:30", DurationMinutes: 30},
			{StartTime: "09:35", EndTime: "10:05", DurationMinutes: 30},
		},
	}}

	rec := serve(uc, "/vets/7/available-slots?date=2026-10-20")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), uc.got.VetID)
	assert.True(t, uc.got.Date.Equal(date))

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-10-20", body.Date)
	require.Len(t, body.Slots, 2)
	assert.Equal(t, "09:35", body.Slots[1].StartTime)
}

func TestHandleEmptyDayIsEmptyArray(t *testing.T) {
	uc := &fakeUseCase{resp: &get_available_slots.Response{VetID: 7, Date: time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC)}}

	rec := serve(uc, "/vets/7/available-slots?date=2026-10-25")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "bad vet id", target: "/vets/x/available-slots?date=2026-10-20", status: http.StatusBadRequest},
		{name: "missing date", target: "/vets/7/available-slots", status: http.StatusBadRequest},
		{name: "bad date", target: "/vets/7/available-slots?date=20-10-2026", status: http.StatusBadRequest},
		{name: "vet not found", target: "/vets/7/available-slots?date=2026-10-20", err: get_available_slots.ErrVetNotFound, status: http.StatusNotFound},
		{name: "internal", target: "/vets/7/available-slots?date=2026-10-20", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
