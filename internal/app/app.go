package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/config"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
	"github.com/riskibarqy/fantasy-roster/internal/domain/transfer"
	"github.com/riskibarqy/fantasy-roster/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-roster/internal/observability"
	"github.com/riskibarqy/fantasy-roster/internal/platform/id"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
	"github.com/riskibarqy/fantasy-roster/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-roster/internal/usecase"
)

const (
	shutdownTimeout    = 10 * time.Second
	minJanitorInterval = time.Minute
)

// App owns the HTTP server and everything it needs to shut down.
type App struct {
	cfg      config.Config
	logger   *logging.Logger
	server   *http.Server
	sessions *usecase.SessionRegistry
	closers  []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	rules, err := config.LoadRosterRules(cfg.RosterRulesFile, cfg.RosterEnforcePositionMatch)
	if err != nil {
		return nil, err
	}

	w := &wiring{}
	app, err := build(ctx, cfg, rules, logger, w)
	if err != nil {
		closeAll(w.closers, logger)
		return nil, err
	}
	return app, nil
}

func build(ctx context.Context, cfg config.Config, rules roster.Rules, logger *logging.Logger, w *wiring) (*App, error) {
	backend, err := buildBackend(ctx, cfg, logger, w)
	if err != nil {
		return nil, err
	}
	backend.Players, err = wrapPlayerCache(ctx, cfg, backend.Players, logger, w)
	if err != nil {
		return nil, err
	}

	verifier, err := buildVerifier(cfg, logger, w)
	if err != nil {
		return nil, err
	}

	var (
		sessions *usecase.SessionRegistry
		metrics  *observability.Metrics
		observer usecase.MutationObserver
	)
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics(func() int { return sessions.Len() })
		observer = metrics
	}
	for _, breaker := range w.breakers {
		watchBreaker(breaker, metrics, logger)
	}

	sessions = usecase.NewSessionRegistry(backend, usecase.SessionConfig{
		Rules:    rules,
		Window:   transfer.NewWindow(cfg.TransferDeadline),
		IdleTTL:  cfg.SessionIdleTTL,
		Observer: observer,
		Logger:   logger,
	})
	profiles := usecase.NewProfileService(backend.Players, backend.Scores, cfg.RosterFormWorkers, logger)

	routerCfg := httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		IDGenerator:        id.NewUUIDGenerator(),
	}
	if metrics != nil {
		routerCfg.Metrics = metrics.Handler()
	}
	handler := httpapi.NewHandler(sessions, profiles, logger)
	router := httpapi.NewRouter(handler, verifier, logger, routerCfg)

	logger.Info("app wired",
		"backend", cfg.BackendDriver,
		"cache", cfg.CacheDriver,
		"auth", cfg.AuthMode,
		"transfer_deadline", cfg.TransferDeadline,
		"enforce_position_match", rules.EnforcePositionMatch,
	)

	return &App{
		cfg:    cfg,
		logger: logger,
		server: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           router,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
		sessions: sessions,
		closers:  w.closers,
	}, nil
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves HTTP and sweeps idle sessions until ctx is done, then shuts the
// server down gracefully.
func (a *App) Run(ctx context.Context) error {
	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go a.sessions.RunJanitor(janitorCtx, janitorInterval(a.cfg.SessionIdleTTL))

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.logger.Info("http server stopped")
	return nil
}

func (a *App) Close() {
	closeAll(a.closers, a.logger)
}

func watchBreaker(breaker *resilience.CircuitBreaker, metrics *observability.Metrics, logger *logging.Logger) {
	breaker.OnStateChange(func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
		if metrics != nil {
			metrics.ObserveCircuit(name, from, to)
		}
	})
}

func janitorInterval(idleTTL time.Duration) time.Duration {
	if interval := idleTTL / 2; interval > minJanitorInterval {
		return interval
	}
	return minJanitorInterval
}

func closeAll(closers []func() error, logger *logging.Logger) {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			logger.Warn("close resource failed", "error", err)
		}
	}
}
