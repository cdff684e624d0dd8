package register_vet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VetBookingService/internal/service/vets"
	"github.com/m04kA/VetBookingService/internal/service/vets/models"
)

type fakeService struct {
	got *models.RegisterRequest
	err error
}

func (f *fakeService) Register(_ context.Context, req *models.RegisterRequest) (*models.VetResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.VetResponse{ID: req.VetID, Name: req.Name, AppointmentTypes: []models.AppointmentTypeResponse{}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc VetService, payload string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/internal/vets", strings.NewReader(payload))
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandleRegisters(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, `{"vetId":7,"name":"Dr. Ivanova"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.got.VetID)

	var body models.VetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Dr. Ivanova", body.Name)
}

func TestHandleErrors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{err: fmt.Errorf("%w: empty name", vets.ErrInvalidInput)}, `{"vetId":7}`).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: errors.New("boom")}, `{"vetId":7,"name":"x"}`).Code)
}
