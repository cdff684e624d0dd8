package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorReason(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondErrorReason(rec, http.StatusConflict, "slot_taken", "занято")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Code: http.StatusConflict, Message: "занято", Reason: "slot_taken"}, body)
}

func TestRespondJSONNilPayload(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondJSON(rec, http.StatusOK, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Barsik"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "Barsik", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Barsik","age":3}`))
	assert.Error(t, DecodeJSON(req, &dst))

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	assert.ErrorIs(t, DecodeJSON(req, &dst), io.EOF)
}

func TestPathParams(t *testing.T) {
	var (
		vetID  int64
		vetErr error
	)
	r := mux.NewRouter()
	r.HandleFunc("/vets/{vetId}", func(_ http.ResponseWriter, req *http.Request) {
		vetID, vetErr = PathInt64(req, "vetId")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/vets/12", nil))
	require.NoError(t, vetErr)
	assert.Equal(t, int64(12), vetID)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/vets/0", nil))
	assert.Error(t, vetErr)
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2026-10-20")
	require.NoError(t, err)
	assert.Equal(t, 20, date.Day())

	_, err = ParseDate("2026-13-01")
	assert.Error(t, err)
}
