package introspect

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/fantasy-roster/internal/domain/user"
	"github.com/riskibarqy/fantasy-roster/internal/platform/cache"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
	"github.com/riskibarqy/fantasy-roster/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-roster/internal/usecase"
)

var errIntrospectTransient = errors.New("introspection transient failure")

type Config struct {
	URL            string
	AdminKey       string
	Timeout        time.Duration
	CacheTTL       time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client verifies bearer tokens with the backend's introspection endpoint.
// Active principals are cached by token hash for CacheTTL.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	adminKey      string
	logger        *logging.Logger
	breaker       *resilience.CircuitBreaker
	cache         *cache.Store
}

func NewClient(httpClient *http.Client, cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}

	var principals *cache.Store
	if cfg.CacheTTL > 0 {
		principals = cache.NewStore(cfg.CacheTTL)
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: strings.TrimSpace(cfg.URL),
		adminKey:      strings.TrimSpace(cfg.AdminKey),
		logger:        logger,
		breaker:       resilience.NewOptionalCircuitBreaker("auth_introspect", cfg.CircuitBreaker),
		cache:         principals,
	}
}

// Breaker is nil when the circuit breaker is disabled.
func (c *Client) Breaker() *resilience.CircuitBreaker {
	return c.breaker
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	cacheKey := hashToken(token)
	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, cacheKey); ok {
			if principal, ok := cached.(user.Principal); ok {
				return principal, nil
			}
		}
	}

	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "introspection circuit breaker rejected request", "state", c.breaker.State())
			return user.Principal{}, fmt.Errorf("%w: auth service: %w", usecase.ErrDependencyUnavailable, err)
		}
	}

	principal, err := c.introspect(ctx, token)
	c.recordCircuitResult(err)
	if err != nil {
		if errors.Is(err, errIntrospectTransient) {
			return user.Principal{}, fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
		}
		return user.Principal{}, err
	}

	if c.cache != nil {
		c.cache.Set(ctx, cacheKey, principal)
	}
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, fmt.Errorf("create introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set("x-admin-key", c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return user.Principal{}, ctx.Err()
		}
		return user.Principal{}, fmt.Errorf("%w: request introspection: %v", errIntrospectTransient, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: read introspect response: %v", errIntrospectTransient, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	case resp.StatusCode == http.StatusForbidden:
		// the service rejected our admin key, not the caller's token
		c.logger.ErrorContext(ctx, "introspection rejected admin key", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("%w: introspection forbidden", usecase.ErrDependencyUnavailable)
	case resp.StatusCode != http.StatusOK:
		c.logger.WarnContext(ctx, "introspection non-200", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("%w: introspection status %d", errIntrospectTransient, resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("unmarshal introspect response: %w", err)
	}
	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("%w: introspect response has no user_id", usecase.ErrUnauthorized)
	}

	return user.Principal{
		UserID: decoded.UserID,
		Email:  decoded.Email,
	}, nil
}

func (c *Client) recordCircuitResult(err error) {
	if c.breaker == nil {
		return
	}
	if err != nil && errors.Is(err, errIntrospectTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
