package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	err := New(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	assert.Equal(t, "Resource not found", err.Error())
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		errorCode  string
		message    string
	}{
		{
			name:       "bad request",
			statusCode: http.StatusBadRequest,
			errorCode:  "INVALID_REQUEST",
			message:    "Invalid request format",
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			errorCode:  "DATASET_NOT_FOUND",
			message:    "Dataset file not found",
		},
		{
			name:       "internal error",
			statusCode: http.StatusInternalServerError,
			errorCode:  "CHART_RENDER_FAILED",
			message:    "Chart rendering failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.statusCode, tt.errorCode, tt.message)
			assert.Equal(t, tt.statusCode, err.StatusCode)
			assert.Equal(t, tt.errorCode, err.ErrorCode)
			assert.Equal(t, tt.message, err.Message)
			assert.Nil(t, err.Details)
		})
	}
}

func TestNewWithDetails(t *testing.T) {
	details := map[string]string{"path": "/data/marketing_campaign.csv"}
	err := NewWithDetails(http.StatusNotFound, "DATASET_NOT_FOUND", "Dataset file not found", details)

	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, details, err.Details)
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *APIError
		wantStatus int
		wantCode   string
	}{
		{"invalid request", ErrInvalidRequest, http.StatusBadRequest, "INVALID_REQUEST"},
		{"validation failed", ErrValidationFailed, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"not found", ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"chart not found", ErrChartNotFound, http.StatusNotFound, "CHART_NOT_FOUND"},
		{"dataset missing", ErrDatasetMissing, http.StatusNotFound, "DATASET_NOT_FOUND"},
		{"rate limit", ErrRateLimitExceeded, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{"internal", ErrInternalServer, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"dataset load", ErrDatasetLoad, http.StatusInternalServerError, "DATASET_LOAD_FAILED"},
		{"export failed", ErrExportFailed, http.StatusInternalServerError, "EXPORT_FAILED"},
		{"chart render", ErrChartRender, http.StatusInternalServerError, "CHART_RENDER_FAILED"},
		{"service unavailable", ErrServiceUnavailable, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
			assert.Equal(t, tt.wantCode, tt.err.ErrorCode)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestChartRenderError(t *testing.T) {
	err := ChartRenderError("trends", fmt.Errorf("writer closed"))

	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.Equal(t, "CHART_RENDER_FAILED", err.ErrorCode)
	assert.Contains(t, err.Message, `"trends"`)
	assert.Equal(t, "writer closed", err.Details)
}

func TestExportError(t *testing.T) {
	err := ExportError("xlsx", fmt.Errorf("disk full"))

	assert.Equal(t, "EXPORT_FAILED", err.ErrorCode)
	assert.Contains(t, err.Message, "xlsx")
}

func TestDatasetNotFoundError(t *testing.T) {
	err := DatasetNotFoundError(fmt.Errorf("stat data: no such file"))

	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "DATASET_NOT_FOUND", err.ErrorCode)
	assert.Equal(t, "stat data: no such file", err.Details)
}

func TestNewValidationErrors(t *testing.T) {
	errs := []ValidationError{
		{Field: "education", Message: "unknown level"},
		{Field: "region", Message: "unknown region"},
	}
	err := NewValidationErrors(errs)

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	detail, ok := err.Details.(ValidationErrors)
	require.True(t, ok)
	assert.Len(t, detail.Errors, 2)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrDatasetMissing)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "DATASET_NOT_FOUND", resp.Error.ErrorCode)
}

func TestErrPanic(t *testing.T) {
	err := ErrPanic("boom")

	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	rec, ok := err.Details.(PanicRecovery)
	require.True(t, ok)
	assert.Equal(t, "boom", rec.Message)
}

func TestAPIError_Render(t *testing.T) {
	err := New(http.StatusConflict, "CONFLICT", "Resource conflict")
	req := httptest.NewRequest(http.MethodGet, "/api/dataset", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, err.Render(rec, req))
}
