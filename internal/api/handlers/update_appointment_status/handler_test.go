package update_appointment_status

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VetBookingService/internal/api/middleware"
	"github.com/m04kA/VetBookingService/internal/service/appointments"
	"github.com/m04kA/VetBookingService/internal/service/appointments/models"
)

type fakeService struct {
	got *models.UpdateStatusRequest
	err error
}

func (f *fakeService) UpdateStatus(_ context.Context, id uuid.UUID, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id.String(), Status: req.Status}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc AppointmentService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{appointmentId}/status", NewHandler(svc, nopLogger{}).Handle)
	req := httptest.NewRequest(http.MethodPatch, "/appointments/"+uuid.NewString()+"/status", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleCompleted(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, `{"status":"completed"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.got.UserID)
	assert.Equal(t, "completed", svc.got.Status)
}

func TestHandleCancelledWithReason(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, `{"status":"cancelled","cancellationReason":"vet is sick"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "vet is sick", svc.got.Reason)
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "unknown status", err: appointments.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "not found", err: appointments.ErrAppointmentNotFound, status: http.StatusNotFound},
		{name: "not the vet", err: appointments.ErrAccessDenied, status: http.StatusForbidden},
		{name: "pending to completed", err: appointments.ErrInvalidTransition, status: http.StatusConflict},
		{name: "internal", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, serve(&fakeService{err: tt.err}, `{"status":"completed"}`).Code)
		})
	}

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "").Code)
}
