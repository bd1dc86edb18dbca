package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fantasy-roster/internal/config"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
)

func TestStartTelemetry_AllDisabled(t *testing.T) {
	cfg := config.Config{
		ServiceName:    "fantasy-roster-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	tel, err := StartTelemetry(cfg, logging.NewNop())
	require.NoError(t, err)
	assert.Nil(t, tel.traceShutdown)
	assert.Nil(t, tel.profiler)
	assert.Nil(t, tel.pprofServer)
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestStartTelemetry_UptraceWithoutDSNStaysOff(t *testing.T) {
	tel, err := StartTelemetry(config.Config{UptraceEnabled: true}, logging.NewNop())
	require.NoError(t, err)
	assert.Nil(t, tel.traceShutdown)
}

func TestTelemetryShutdown_NilSafe(t *testing.T) {
	var tel *Telemetry
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestPprofMux_ServesIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	pprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "goroutine")
}
