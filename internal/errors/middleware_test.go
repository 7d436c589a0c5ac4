package errors

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMiddleware_LogsRequests(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	m := NewErrorMiddleware(NewErrorHandler(logger, false), logger)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"success"}`))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/campaigns?region=North", nil)
	rec := httptest.NewRecorder()
	m.Handler(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	logged := buf.String()
	assert.Contains(t, logged, "http request")
	assert.Contains(t, logged, "/api/campaigns")
	assert.Contains(t, logged, "region=North")
}

func TestErrorMiddleware_LogsErrorBody(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	m := NewErrorMiddleware(NewErrorHandler(logger, false), logger)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusBadRequest)
	})

	body := `{"path":"../etc/passwd","api_key":"sekret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/dataset/reload", strings.NewReader(body))
	req.ContentLength = int64(len(body))
	rec := httptest.NewRecorder()
	m.Handler(next).ServeHTTP(rec, req)

	logged := buf.String()
	assert.Contains(t, logged, "request_body")
	assert.Contains(t, logged, "[REDACTED]")
	assert.NotContains(t, logged, "sekret")
}

func TestErrorMiddleware_RecoversPanic(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	m := NewErrorMiddleware(NewErrorHandler(logger, false), logger)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("loader blew up")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/trends", nil)
	rec := httptest.NewRecorder()
	m.Handler(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, TypeInternal, doc["type"])
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	handler := NewErrorHandler(logger, false)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	RecoveryMiddleware(handler)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSanitizeRequestBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want func(t *testing.T, out string)
	}{
		{
			name: "json with sensitive field",
			body: `{"password":"hunter2","region":"North"}`,
			want: func(t *testing.T, out string) {
				assert.Contains(t, out, "[REDACTED]")
				assert.Contains(t, out, "North")
				assert.NotContains(t, out, "hunter2")
			},
		},
		{
			name: "customer pii redacted",
			body: `{"income":71613,"year_birth":1957,"education":"PhD"}`,
			want: func(t *testing.T, out string) {
				assert.Contains(t, out, "[REDACTED]")
				assert.Contains(t, out, "PhD")
				assert.NotContains(t, out, "71613")
				assert.NotContains(t, out, "1957")
			},
		},
		{
			name: "non-json passes through",
			body: "region=North&education=PhD",
			want: func(t *testing.T, out string) {
				assert.Equal(t, "region=North&education=PhD", out)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want(t, sanitizeRequestBody(tt.body))
		})
	}
}
