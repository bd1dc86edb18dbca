package observability

import (
	"context"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/grafana/pyroscope-go"
	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/riskibarqy/fantasy-roster/internal/config"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
)

// Telemetry owns the process-wide tracing exporter, continuous profiler
// and the optional pprof listener. The zero value is a no-op.
type Telemetry struct {
	logger        *logging.Logger
	traceShutdown func(context.Context) error
	profiler      *pyroscope.Profiler
	pprofServer   *http.Server
}

// StartTelemetry enables every telemetry sink the config asks for. On error
// anything already started is shut down before returning.
func StartTelemetry(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger}

	t.startTracing(cfg)

	if err := t.startProfiler(cfg); err != nil {
		_ = t.Shutdown(context.Background())
		return nil, errors.Wrap(err, "start pyroscope")
	}

	t.startPprof(cfg)
	return t, nil
}

func (t *Telemetry) startTracing(cfg config.Config) {
	switch {
	case !cfg.UptraceEnabled:
		t.logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		t.logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)
	t.traceShutdown = uptrace.Shutdown
	t.logger.Info("uptrace enabled", "service_name", cfg.ServiceName, "environment", cfg.AppEnv)
}

func (t *Telemetry) startProfiler(cfg config.Config) error {
	if !cfg.PyroscopeEnabled {
		t.logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
			"backend": cfg.BackendDriver,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexDuration,
			pyroscope.ProfileBlockDuration,
		},
	})
	if err != nil {
		return err
	}
	t.profiler = profiler
	t.logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return nil
}

func (t *Telemetry) startPprof(cfg config.Config) {
	if !cfg.PprofEnabled {
		t.logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
		return
	}

	t.pprofServer = &http.Server{
		Addr:              cfg.PprofAddr,
		Handler:           pprofMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv := t.pprofServer
	go func() {
		t.logger.Info("pprof server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.logger.Error("pprof server failed", "error", err)
		}
	}()
}

// pprofMux serves the runtime profiles under /debug/pprof/. It is mounted
// on its own listener so profiles never share the public API port.
func pprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

// Shutdown flushes traces and stops the profiler and pprof listener. All
// sinks are attempted; their errors are combined.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}

	var err error
	if t.pprofServer != nil {
		err = errors.CombineErrors(err, errors.Wrap(t.pprofServer.Shutdown(ctx), "stop pprof"))
		t.pprofServer = nil
	}
	if t.profiler != nil {
		err = errors.CombineErrors(err, errors.Wrap(t.profiler.Stop(), "stop pyroscope"))
		t.profiler = nil
	}
	if t.traceShutdown != nil {
		err = errors.CombineErrors(err, errors.Wrap(t.traceShutdown(ctx), "flush uptrace"))
		t.traceShutdown = nil
	}
	return err
}
