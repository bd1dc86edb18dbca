package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
	"github.com/riskibarqy/fantasy-roster/internal/usecase"
)

const maxRequestBodyBytes = 1 << 16

var requestJSON = jsoniter.ConfigCompatibleWithStandardLibrary

type Handler struct {
	sessions  *usecase.SessionRegistry
	profiles  *usecase.ProfileService
	logger    *logging.Logger
	validator *validator.Validate
	now       func() time.Time
}

func NewHandler(sessions *usecase.SessionRegistry, profiles *usecase.ProfileService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		sessions:  sessions,
		profiles:  profiles,
		logger:    logger,
		validator: validator.New(),
		now:       time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := requestJSON.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

// session resolves the caller's roster session from the authenticated principal.
func (h *Handler) session(ctx context.Context) (*usecase.Session, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return h.sessions.Get(ctx, principal.UserID)
}
