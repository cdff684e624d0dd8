package get_vet_schedule

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VetBookingService/internal/domain"
	"github.com/m04kA/VetBookingService/internal/service/schedule"
	"github.com/m04kA/VetBookingService/internal/service/schedule/models"
)

type fakeService struct {
	err error
}

func (f *fakeService) GetTemplate(_ context.Context, vetID int64) (*models.TemplateResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return models.FromDomainTemplate(domain.NewDefaultTemplate(vetID)), nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc ScheduleService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/vets/{vetId}/schedule", NewHandler(svc, nopLogger{}).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleReturnsSevenDays(t *testing.T) {
	rec := serve(&fakeService{}, "/vets/7/schedule")

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.TemplateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body.VetID)
	require.Len(t, body.Days, 7)
	assert.Equal(t, "monday", body.Days[0].Weekday)
	assert.False(t, body.Days[0].IsWorkingDay)
}

func TestHandleErrors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/vets/-1/schedule").Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: schedule.ErrVetNotFound}, "/vets/7/schedule").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: errors.New("boom")}, "/vets/7/schedule").Code)
}
