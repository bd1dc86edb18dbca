package rest

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
	"github.com/riskibarqy/fantasy-roster/internal/platform/resilience"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultRetryBackoff  = 250 * time.Millisecond
	maxResponseBodySize  = 4 << 20
	preferRepresentation = "return=representation"
)

var errBackendTransient = crerr.New("backend transient failure")

// Config describes a PostgREST-style backend. Dial is only set by tests.
// MaxRetries applies to reads only; writes are never replayed.
type Config struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
	Dial           fasthttp.DialFunc
}

// Client issues table and RPC requests against the backend REST surface.
type Client struct {
	http         *fasthttp.Client
	baseURL      string
	apiKey       string
	timeout      time.Duration
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
}

func NewClient(cfg Config) (*Client, error) {
	baseURL, err := validateBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid BACKEND_REST_URL")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, crerr.New("backend api key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retryBackoff := cfg.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = defaultRetryBackoff
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Client{
		http: &fasthttp.Client{
			Name:                "fantasy-roster",
			Dial:                cfg.Dial,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBodySize,
		},
		baseURL:      baseURL,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		timeout:      timeout,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: retryBackoff,
		logger:       logger,
		breaker:      resilience.NewOptionalCircuitBreaker("backend_rest", cfg.CircuitBreaker),
	}, nil
}

// Breaker exposes the guard so callers can observe state changes. Nil when disabled.
func (c *Client) Breaker() *resilience.CircuitBreaker {
	return c.breaker
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	prefer string
}

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend status=%d code=%s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("backend status=%d: %s", e.Status, e.Message)
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

func (c *Client) do(ctx context.Context, req request, target any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "backend circuit breaker rejected request", "state", c.breaker.State(), "path", req.path)
			return fmt.Errorf("%w: %w", errBackendTransient, err)
		}
	}

	err := c.execute(ctx, req, target)
	c.recordCircuitResult(ctx, err)
	return err
}

type response struct {
	status int
	body   []byte
}

type sendResult struct {
	resp response
	err  error
}

func (c *Client) execute(ctx context.Context, req request, target any) error {
	fullURL := c.baseURL + req.path
	if encoded := req.query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("backend.method", req.method),
			attribute.String("backend.path", req.path),
		)
	}

	var payload []byte
	if req.body != nil {
		buf := bytebufferpool.Get()
		defer bytebufferpool.Put(buf)
		if err := sonic.ConfigDefault.NewEncoder(buf).Encode(req.body); err != nil {
			return crerr.Wrap(err, "encode backend request body")
		}
		payload = buf.Bytes()
	}

	attempts := 1
	if req.method == fasthttp.MethodGet {
		attempts += c.maxRetries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := sleepContext(ctx, time.Duration(attempt)*c.retryBackoff); err != nil {
				return err
			}
		}

		resp, err := c.send(ctx, req, fullURL, payload)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			lastErr = fmt.Errorf("%w: %s %s: %w", errBackendTransient, req.method, req.path, err)
			continue
		}

		if resp.status < 200 || resp.status > 299 {
			apiErr := decodeAPIError(resp.status, resp.body)
			if !isRetryableStatus(resp.status) {
				return crerr.Wrapf(apiErr, "%s %s", req.method, req.path)
			}
			lastErr = fmt.Errorf("%w: %s %s: %w", errBackendTransient, req.method, req.path, apiErr)
			continue
		}

		if target == nil || len(resp.body) == 0 {
			return nil
		}
		if err := sonic.Unmarshal(resp.body, target); err != nil {
			return crerr.Wrapf(err, "decode backend response %s", req.path)
		}
		return nil
	}

	if attempts > 1 {
		c.logger.WarnContext(ctx, "backend request failed after retries", "path", req.path, "attempts", attempts, "error", lastErr)
	}
	return lastErr
}

// send performs one round trip. fasthttp only honours deadlines, so the call
// runs in its own goroutine and a cancelled ctx returns immediately; the
// abandoned exchange releases its buffers once the client timeout fires.
func (c *Client) send(ctx context.Context, req request, fullURL string, payload []byte) (response, error) {
	httpReq := fasthttp.AcquireRequest()
	httpReq.SetRequestURI(fullURL)
	httpReq.Header.SetMethod(req.method)
	httpReq.Header.Set("apikey", c.apiKey)
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Accept", "application/json")
	if req.prefer != "" {
		httpReq.Header.Set("Prefer", req.prefer)
	}
	if payload != nil {
		httpReq.Header.SetContentType("application/json")
		httpReq.SetBody(payload)
	}
	deadline := c.deadline(ctx)

	done := make(chan sendResult, 1)
	go func() {
		httpResp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(httpReq)
		defer fasthttp.ReleaseResponse(httpResp)

		if err := c.http.DoDeadline(httpReq, httpResp, deadline); err != nil {
			done <- sendResult{err: err}
			return
		}
		done <- sendResult{resp: response{
			status: httpResp.StatusCode(),
			body:   append([]byte(nil), httpResp.Body()...),
		}}
	}()

	select {
	case <-ctx.Done():
		return response{}, ctx.Err()
	case res := <-done:
		if err := ctx.Err(); err != nil {
			return response{}, err
		}
		return res.resp, res.err
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// deadline is the earlier of the caller deadline and the client timeout.
func (c *Client) deadline(ctx context.Context) time.Time {
	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		return ctxDeadline
	}
	return deadline
}

func (c *Client) recordCircuitResult(ctx context.Context, err error) {
	if c.breaker == nil {
		return
	}
	switch {
	case err == nil:
		c.breaker.RecordSuccess()
	case isCircuitFailure(err):
		c.breaker.RecordFailure()
		c.logger.WarnContext(ctx, "backend request failed", "state", c.breaker.State(), "error", err)
	default:
		c.breaker.RecordSuccess()
	}
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errBackendTransient) && !stderrors.Is(err, resilience.ErrCircuitOpen)
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusRequestTimeout ||
		status == fasthttp.StatusTooManyRequests ||
		status >= fasthttp.StatusInternalServerError
}

func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	var payload errorPayload
	if err := sonic.Unmarshal(body, &payload); err == nil {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = abbreviate(string(body), 256)
	}
	return apiErr
}

func apiErrorCode(err error) (int, string, bool) {
	var apiErr *APIError
	if !crerr.As(err, &apiErr) {
		return 0, "", false
	}
	return apiErr.Status, apiErr.Code, true
}

func validateBaseURL(raw string) (string, error) {
	candidate := strings.TrimRight(strings.TrimSpace(raw), "/")
	if candidate == "" {
		return "", crerr.New("value is empty")
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", crerr.New("host is empty")
	}
	return candidate, nil
}

func abbreviate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func eq(value string) string {
	return "eq." + value
}
