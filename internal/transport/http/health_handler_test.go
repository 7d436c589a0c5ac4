package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignpulse/internal/services"
)

type fakeHealthChecker struct {
	status string
}

func (f *fakeHealthChecker) HealthCheck(ctx context.Context) services.HealthStatus {
	return services.HealthStatus{
		Status:    f.status,
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Services: map[string]interface{}{
			"dataset": services.ServiceHealth{Status: "ready"},
		},
	}
}

func (f *fakeHealthChecker) LivenessCheck(ctx context.Context) services.HealthStatus {
	return services.HealthStatus{Status: "alive", Timestamp: time.Now(), Version: "1.0.0"}
}

func (f *fakeHealthChecker) Version() map[string]interface{} {
	return map[string]interface{}{"version": "1.0.0"}
}

func (f *fakeHealthChecker) Stats(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{"dataset_rows": 2240}
}

func healthTestServer(status string) *httptest.Server {
	h := NewHealthHandler(&fakeHealthChecker{status: status}, testLogger())
	return httptest.NewServer(h.Routes())
}

func TestHealthHandler_Healthy(t *testing.T) {
	srv := healthTestServer("ok")
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestHealthHandler_Degraded(t *testing.T) {
	srv := healthTestServer("degraded")
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler(&fakeHealthChecker{status: "ok"}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.Liveness(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alive")
}

func TestHealthHandler_VersionAndStats(t *testing.T) {
	srv := healthTestServer("ok")
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/version")
	require.NoError(t, err)
	body := decodeEnvelope(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "1.0.0", data["version"])

	resp, err = http.Get(srv.URL + "/stats")
	require.NoError(t, err)
	body = decodeEnvelope(t, resp)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, float64(2240), data["dataset_rows"])
}
