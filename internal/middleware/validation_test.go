package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "campaignpulse/internal/errors"
)

func newValidation(t *testing.T) *ValidationMiddleware {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewValidationMiddleware(logger, apierrors.NewErrorHandler(logger, false))
}

func TestValidateRequest_SkipsBodyChecksOnGET(t *testing.T) {
	m := newValidation(t)
	called := false
	handler := m.ValidateRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	assert.True(t, called)
}

func TestValidateRequest_RejectsUnknownRegionOnGET(t *testing.T) {
	m := newValidation(t)
	handler := m.ValidateRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard?region=Atlantis", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "region")
}

func TestValidateRequest_AcceptsKnownRegionOnGET(t *testing.T) {
	m := newValidation(t)
	called := false
	handler := m.ValidateRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard?region=North&education=PhD", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValidateRequest_RejectsInvalidJSON(t *testing.T) {
	m := newValidation(t)
	handler := m.ValidateRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/dataset/reload", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_JSON")
}

func TestValidateStruct_RegionValidator(t *testing.T) {
	m := newValidation(t)

	type query struct {
		Region string `json:"region" validate:"required,region"`
	}

	assert.NoError(t, m.ValidateStruct(query{Region: "North"}))
	assert.NoError(t, m.ValidateStruct(query{Region: "All Regions"}))

	err := m.ValidateStruct(query{Region: "Atlantis"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "region")
}

func TestValidateStruct_FilenameValidator(t *testing.T) {
	m := newValidation(t)

	type req struct {
		Name string `json:"name" validate:"required,filename"`
	}

	assert.NoError(t, m.ValidateStruct(req{Name: "marketing_campaign.csv"}))
	assert.Error(t, m.ValidateStruct(req{Name: "../etc/passwd"}))
}

func TestContentTypeValidator(t *testing.T) {
	handler := ContentTypeValidator("application/json")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/dataset/reload", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/dataset/reload", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
