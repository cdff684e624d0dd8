package get_vet_appointments

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VetBookingService/internal/api/middleware"
	"github.com/m04kA/VetBookingService/internal/service/appointments"
	"github.com/m04kA/VetBookingService/internal/service/appointments/models"
)

type fakeService struct {
	got *models.GetVetAppointmentsRequest
	err error
}

func (f *fakeService) GetVetAppointments(_ context.Context, req *models.GetVetAppointmentsRequest) (*models.AppointmentListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc AppointmentService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/vets/{vetId}/appointments", NewHandler(svc, nopLogger{}).Handle)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleParsesFilters(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/vets/7/appointments?startDate=2026-10-19&endDate=2026-10-25&status=confirmed&includeInactive=true")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.got.ActorID)
	assert.Equal(t, int64(7), svc.got.VetID)
	require.NotNil(t, svc.got.StartDate)
	assert.True(t, svc.got.StartDate.Equal(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, svc.got.EndDate)
	require.NotNil(t, svc.got.Status)
	assert.Equal(t, "confirmed", *svc.got.Status)
	assert.True(t, svc.got.IncludeInactive)
}

func TestHandleNoFilters(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/vets/7/appointments")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.StartDate)
	assert.Nil(t, svc.got.Status)
	assert.False(t, svc.got.IncludeInactive)
}

func TestHandleErrors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/vets/7/appointments?startDate=tomorrow").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/vets/7/appointments?includeInactive=maybe").Code)
	assert.Equal(t, http.StatusForbidden, serve(&fakeService{err: appointments.ErrAccessDenied}, "/vets/8/appointments").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{err: appointments.ErrInvalidInput}, "/vets/7/appointments").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: errors.New("boom")}, "/vets/7/appointments").Code)
}
