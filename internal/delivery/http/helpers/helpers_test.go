package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventlisting/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type sampleRequest struct {
	Name string `json:"name"`
}

func (s sampleRequest) Validate() []string {
	if s.Name == "" {
		return []string{"name is required"}
	}
	return nil
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantOK   bool
		wantCode string
	}{
		{name: "valid", body: `{"name":"Ada"}`, wantOK: true},
		{name: "empty body", body: ``, wantCode: ErrCodeBadRequest},
		{name: "malformed", body: `{"name":`, wantCode: ErrCodeBadRequest},
		{name: "unknown field", body: `{"name":"Ada","admin":true}`, wantCode: ErrCodeBadRequest},
		{name: "wrong type", body: `{"name":42}`, wantCode: ErrCodeBadRequest},
		{name: "trailing object", body: `{"name":"a"}{"name":"b"}`, wantCode: ErrCodeBadRequest},
		{name: "fails validation", body: `{"name":""}`, wantCode: ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			var dest sampleRequest
			ok := DecodeAndValidate(rr, req, &dest)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, "Ada", dest.Name)
				return
			}
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			resp := decodeEnvelope(t, rr)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.NewValidationError("title is required"), http.StatusBadRequest, ErrCodeValidation},
		{fmt.Errorf("get: %w", domain.ErrNotFound), http.StatusNotFound, ErrCodeNotFound},
		{domain.ErrCapacityExceeded, http.StatusConflict, ErrCodeConflict},
		{domain.ErrConflict, http.StatusConflict, ErrCodeConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, ErrCodeUnauthorized},
		{domain.ErrInvalidTicket, http.StatusNotFound, ErrCodeNotFound},
		{&domain.PersistenceError{Op: "list", Err: errors.New("conn refused")}, http.StatusInternalServerError, ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.wantCode+"/"+tt.err.Error(), func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteServiceError(rr, httptest.NewRequest(http.MethodGet, "/", nil), testLogger, tt.err, "event not found")
			assert.Equal(t, tt.wantStatus, rr.Code)
			resp := decodeEnvelope(t, rr)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.NotContains(t, resp.Error.Message, "conn refused")
		})
	}
}

func TestWriteJSONSuccess(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSONSuccess(rr, http.StatusCreated, map[string]string{"id": "1"})
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"id":"1"},"error":null}`, rr.Body.String())
}
