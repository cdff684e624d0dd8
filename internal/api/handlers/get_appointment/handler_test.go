package get_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
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
	gotID   uuid.UUID
	gotUser int64
	resp    *models.AppointmentResponse
	err     error
}

func (f *fakeService) GetByID(_ context.Context, id uuid.UUID, userID int64) (*models.AppointmentResponse, error) {
	f.gotID, f.gotUser = id, userID
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc AppointmentService, id string, userID int64) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{appointmentId}", NewHandler(svc, nopLogger{}).Handle)
	req := httptest.NewRequest(http.MethodGet, "/appointments/"+id, nil)
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleOK(t *testing.T) {
	id := uuid.New()
	svc := &fakeService{resp: &models.AppointmentResponse{ID: id.String(), Status: "confirmed"}}

	rec := serve(svc, id.String(), 100)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, svc.gotID)
	assert.Equal(t, int64(100), svc.gotUser)

	var body models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "confirmed", body.Status)
}

func TestHandleErrors(t *testing.T) {
	id := uuid.New().String()
	tests := []struct {
		name   string
		id     string
		err    error
		status int
	}{
		{name: "bad id", id: "42", status: http.StatusBadRequest},
		{name: "not found", id: id, err: appointments.ErrAppointmentNotFound, status: http.StatusNotFound},
		{name: "foreign", id: id, err: appointments.ErrAccessDenied, status: http.StatusForbidden},
		{name: "internal", id: id, err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, serve(&fakeService{err: tt.err}, tt.id, 100).Code)
		})
	}

	assert.Equal(t, http.StatusUnauthorized, serve(&fakeService{}, id, 0).Code)
}
