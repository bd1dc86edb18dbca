package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/fantasy-roster/internal/config"
	"github.com/riskibarqy/fantasy-roster/internal/infrastructure/account/introspect"
	"github.com/riskibarqy/fantasy-roster/internal/infrastructure/account/jwtauth"
	"github.com/riskibarqy/fantasy-roster/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
)

func buildVerifier(cfg config.Config, logger *logging.Logger, w *wiring) (httpapi.TokenVerifier, error) {
	switch cfg.AuthMode {
	case config.AuthIntrospect:
		client := introspect.NewClient(&http.Client{}, introspect.Config{
			URL:            cfg.AuthIntrospectURL,
			AdminKey:       cfg.AuthAdminKey,
			Timeout:        cfg.AuthTimeout,
			CacheTTL:       cfg.AuthCacheTTL,
			CircuitBreaker: cfg.AuthCircuit,
		}, logger)
		w.addBreaker(client.Breaker())
		return client, nil

	case config.AuthJWT:
		verifier, err := jwtauth.NewVerifier(cfg.AuthJWTSecret, cfg.AuthJWTAudience)
		if err != nil {
			return nil, fmt.Errorf("build jwt verifier: %w", err)
		}
		return verifier, nil

	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.AuthMode)
	}
}
