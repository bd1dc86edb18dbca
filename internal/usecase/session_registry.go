package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
	"github.com/riskibarqy/fantasy-roster/internal/domain/transfer"
	"github.com/riskibarqy/fantasy-roster/internal/platform/cache"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
)

const sessionKeyPrefix = "session:"

// Session is the per-user view state: the roster store and its edit mode.
type Session struct {
	UserID string
	Store  *RosterStore
	Edit   *EditSession
}

type SessionConfig struct {
	Rules    roster.Rules
	Window   transfer.Window
	IdleTTL  time.Duration
	Observer MutationObserver
	Logger   *logging.Logger
}

// SessionRegistry hands out one Session per user and forgets sessions that
// stay idle longer than IdleTTL.
type SessionRegistry struct {
	backend Backend
	cfg     SessionConfig
	store   *cache.Store
	logger  *logging.Logger
}

func NewSessionRegistry(backend Backend, cfg SessionConfig) *SessionRegistry {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &SessionRegistry{
		backend: backend,
		cfg:     cfg,
		store:   cache.NewStore(cfg.IdleTTL, cache.WithSlidingExpiry()),
		logger:  logger,
	}
}

func (r *SessionRegistry) Get(ctx context.Context, userID string) (*Session, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	value, err := r.store.GetOrLoad(ctx, sessionKeyPrefix+userID, func(ctx context.Context) (any, error) {
		r.logger.DebugContext(ctx, "session created", "user_id", userID)
		return r.newSession(userID), nil
	})
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	session, ok := value.(*Session)
	if !ok {
		return nil, fmt.Errorf("unexpected session value %T", value)
	}
	return session, nil
}

func (r *SessionRegistry) Forget(ctx context.Context, userID string) {
	r.store.Delete(ctx, sessionKeyPrefix+strings.TrimSpace(userID))
}

func (r *SessionRegistry) Len() int {
	return r.store.Len()
}

// RunJanitor evicts idle sessions until ctx is done.
func (r *SessionRegistry) RunJanitor(ctx context.Context, interval time.Duration) {
	r.store.RunJanitor(ctx, interval)
}

func (r *SessionRegistry) newSession(userID string) *Session {
	store := NewRosterStore(userID, r.backend, RosterStoreConfig{
		Rules:    r.cfg.Rules,
		Window:   r.cfg.Window,
		Observer: r.cfg.Observer,
		Logger:   r.logger,
	})
	return &Session{
		UserID: userID,
		Store:  store,
		Edit:   NewEditSession(store, r.backend.Players),
	}
}
