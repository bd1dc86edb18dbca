package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasyteam"
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
	"github.com/riskibarqy/fantasy-roster/internal/domain/transfer"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
)

type RosterStatus string

const (
	RosterStatusLoading   RosterStatus = "loading"
	RosterStatusNeedsTeam RosterStatus = "needs_team"
	RosterStatusReady     RosterStatus = "ready"
)

const (
	OperationReplacePlayer  = "replace_player"
	OperationSetCaptain     = "set_captain"
	OperationSetViceCaptain = "set_vice_captain"
	OperationSwapStarter    = "swap_starter"
)

// RosterSnapshot is a copy of the store state; callers may keep it.
type RosterSnapshot struct {
	Status   RosterStatus
	Team     fantasyteam.Team
	Entries  []roster.Entry
	LoadedAt time.Time
}

type RosterStoreConfig struct {
	Rules    roster.Rules
	Window   transfer.Window
	Observer MutationObserver
	Logger   *logging.Logger
}

// RosterStore holds one user's team and roster. Backend calls are not
// serialised; whichever response lands last becomes the state.
type RosterStore struct {
	userID   string
	teams    fantasyteam.Repository
	rosters  roster.Repository
	players  player.Repository
	rules    roster.Rules
	window   transfer.Window
	observer MutationObserver
	logger   *logging.Logger
	now      func() time.Time

	mu    sync.RWMutex
	state RosterSnapshot
}

func NewRosterStore(userID string, backend Backend, cfg RosterStoreConfig) *RosterStore {
	observer := cfg.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterStore{
		userID:   strings.TrimSpace(userID),
		teams:    backend.Teams,
		rosters:  backend.Rosters,
		players:  backend.Players,
		rules:    cfg.Rules,
		window:   cfg.Window,
		observer: observer,
		logger:   logger.With("user_id", strings.TrimSpace(userID)),
		now:      time.Now,
		state:    RosterSnapshot{Status: RosterStatusLoading},
	}
}

func (s *RosterStore) UserID() string {
	return s.userID
}

func (s *RosterStore) Window() transfer.Window {
	return s.window
}

func (s *RosterStore) Snapshot() RosterSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySnapshot(s.state)
}

// Load fetches the user's team and roster. A missing team yields
// RosterStatusNeedsTeam without error. On failure the previous state is kept.
func (s *RosterStore) Load(ctx context.Context) (snapshot RosterSnapshot, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterStore.Load", attribute.String("user_id", s.userID))
	defer func() { endSpan(span, err) }()

	if s.userID == "" {
		return s.Snapshot(), fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	team, exists, err := s.teams.GetByUserID(ctx, s.userID)
	if err != nil {
		s.observer.BackendFailure("get_team_by_user")
		s.logger.WarnContext(ctx, "load fantasy team failed", "error", err)
		return s.Snapshot(), fmt.Errorf("%w: get team by user: %w", ErrDependencyUnavailable, err)
	}
	if !exists {
		s.replaceState(RosterSnapshot{Status: RosterStatusNeedsTeam, LoadedAt: s.now().UTC()})
		return s.Snapshot(), nil
	}

	entries, err := s.rosters.ListByTeam(ctx, team.ID)
	if err != nil {
		s.observer.BackendFailure("list_roster_by_team")
		s.logger.WarnContext(ctx, "load roster failed", "team_id", team.ID, "error", err)
		return s.Snapshot(), fmt.Errorf("%w: list roster by team: %w", ErrDependencyUnavailable, err)
	}
	s.checkArmbands(ctx, entries)

	s.replaceState(RosterSnapshot{
		Status:   RosterStatusReady,
		Team:     team,
		Entries:  entries,
		LoadedAt: s.now().UTC(),
	})
	return s.Snapshot(), nil
}

// NotifyTeamCreated reloads after the team-creation flow finishes.
func (s *RosterStore) NotifyTeamCreated(ctx context.Context) (RosterSnapshot, error) {
	return s.Load(ctx)
}

// EnsureLoaded loads once; later calls reuse the snapshot.
func (s *RosterStore) EnsureLoaded(ctx context.Context) (RosterSnapshot, error) {
	snapshot := s.Snapshot()
	if snapshot.Status != RosterStatusLoading {
		return snapshot, nil
	}
	return s.Load(ctx)
}

func (s *RosterStore) ReplacePlayer(ctx context.Context, entryID, playerID string) (RosterSnapshot, error) {
	entryID = strings.TrimSpace(entryID)
	playerID = strings.TrimSpace(playerID)

	return s.mutate(ctx, OperationReplacePlayer, func(ctx context.Context, current RosterSnapshot) error {
		if entryID == "" || playerID == "" {
			return fmt.Errorf("%w: entry id and player id are required", ErrInvalidInput)
		}

		replacement, exists, err := s.players.GetByID(ctx, playerID)
		if err != nil {
			s.observer.BackendFailure("get_player_by_id")
			return backendError("get player by id", err)
		}
		if !exists {
			return fmt.Errorf("%w: player %s", ErrNotFound, playerID)
		}

		if err := roster.ValidateReplacement(current.Entries, entryID, replacement, s.rules); err != nil {
			return classifyRosterError(err)
		}

		if err := s.rosters.ReplacePlayer(ctx, current.Team.ID, entryID, playerID); err != nil {
			s.observer.BackendFailure(OperationReplacePlayer)
			return backendError("replace roster player", err)
		}
		return nil
	})
}

// SetCaptain makes entryID the only captain. Atomicity is delegated to the
// repository; a vice-captain promoted to captain loses the vice flag.
func (s *RosterStore) SetCaptain(ctx context.Context, entryID string) (RosterSnapshot, error) {
	entryID = strings.TrimSpace(entryID)

	return s.mutate(ctx, OperationSetCaptain, func(ctx context.Context, current RosterSnapshot) error {
		if entryID == "" {
			return fmt.Errorf("%w: entry id is required", ErrInvalidInput)
		}
		if _, ok := roster.Find(current.Entries, entryID); !ok {
			return fmt.Errorf("%w: roster entry %s", ErrNotFound, entryID)
		}

		if err := s.rosters.SetCaptain(ctx, current.Team.ID, entryID); err != nil {
			s.observer.BackendFailure(OperationSetCaptain)
			return backendError("set captain", err)
		}
		return nil
	})
}

func (s *RosterStore) SetViceCaptain(ctx context.Context, entryID string) (RosterSnapshot, error) {
	entryID = strings.TrimSpace(entryID)

	return s.mutate(ctx, OperationSetViceCaptain, func(ctx context.Context, current RosterSnapshot) error {
		if entryID == "" {
			return fmt.Errorf("%w: entry id is required", ErrInvalidInput)
		}
		if _, ok := roster.Find(current.Entries, entryID); !ok {
			return fmt.Errorf("%w: roster entry %s", ErrNotFound, entryID)
		}

		if err := s.rosters.SetViceCaptain(ctx, current.Team.ID, entryID); err != nil {
			s.observer.BackendFailure(OperationSetViceCaptain)
			return backendError("set vice captain", err)
		}
		return nil
	})
}

// SwapStarter moves a bench entry into the starting eleven in place of a
// starter. The resulting eleven must still form a valid formation.
func (s *RosterStore) SwapStarter(ctx context.Context, benchEntryID, starterEntryID string) (RosterSnapshot, error) {
	benchEntryID = strings.TrimSpace(benchEntryID)
	starterEntryID = strings.TrimSpace(starterEntryID)

	return s.mutate(ctx, OperationSwapStarter, func(ctx context.Context, current RosterSnapshot) error {
		if benchEntryID == "" || starterEntryID == "" {
			return fmt.Errorf("%w: bench and starter entry ids are required", ErrInvalidInput)
		}
		if benchEntryID == starterEntryID {
			return fmt.Errorf("%w: bench and starter entry must differ", ErrInvalidInput)
		}

		if err := roster.ValidateSwap(current.Entries, benchEntryID, starterEntryID, s.rules); err != nil {
			return classifyRosterError(err)
		}

		if err := s.rosters.SwapStarter(ctx, current.Team.ID, benchEntryID, starterEntryID); err != nil {
			s.observer.BackendFailure(OperationSwapStarter)
			return backendError("swap starter", err)
		}
		return nil
	})
}

// CheckDeadline rejects work once the transfer window has closed.
func (s *RosterStore) CheckDeadline() error {
	if !s.window.IsOpen(s.now()) {
		return fmt.Errorf("%w: deadline %s", ErrTransferDeadlinePassed, s.window.Deadline.Format(time.RFC3339))
	}
	return nil
}

// mutate runs the deadline gate, validation and write, then refetches the
// roster. A failed refetch leaves the pre-write state in place.
func (s *RosterStore) mutate(
	ctx context.Context,
	operation string,
	write func(ctx context.Context, current RosterSnapshot) error,
) (snapshot RosterSnapshot, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterStore."+operation, attribute.String("user_id", s.userID))
	defer func() {
		s.observer.RosterMutation(operation, MutationOutcome(err))
		endSpan(span, err)
	}()

	if err := s.CheckDeadline(); err != nil {
		return s.Snapshot(), err
	}

	current, err := s.EnsureLoaded(ctx)
	if err != nil {
		return current, err
	}
	if current.Status != RosterStatusReady {
		return current, fmt.Errorf("%w: create a team before editing the roster", ErrTeamRequired)
	}

	if err := write(ctx, current); err != nil {
		return s.Snapshot(), err
	}

	entries, err := s.rosters.ListByTeam(ctx, current.Team.ID)
	if err != nil {
		s.observer.BackendFailure("list_roster_by_team")
		s.logger.WarnContext(ctx, "refetch roster after write failed", "operation", operation, "error", err)
		return s.Snapshot(), fmt.Errorf("%w: refetch roster after %s: %w", ErrDependencyUnavailable, operation, err)
	}
	s.checkArmbands(ctx, entries)

	s.replaceState(RosterSnapshot{
		Status:   RosterStatusReady,
		Team:     current.Team,
		Entries:  entries,
		LoadedAt: s.now().UTC(),
	})
	s.logger.InfoContext(ctx, "roster mutation applied", "operation", operation, "team_id", current.Team.ID)
	return s.Snapshot(), nil
}

func (s *RosterStore) replaceState(next RosterSnapshot) {
	s.mu.Lock()
	s.state = copySnapshot(next)
	s.mu.Unlock()
}

func (s *RosterStore) checkArmbands(ctx context.Context, entries []roster.Entry) {
	if err := roster.ValidateArmbands(entries); err != nil {
		s.logger.WarnContext(ctx, "backend returned inconsistent armbands", "error", err)
	}
}

func copySnapshot(in RosterSnapshot) RosterSnapshot {
	out := in
	out.Entries = roster.CloneEntries(in.Entries)
	return out
}

func classifyRosterError(err error) error {
	if errors.Is(err, roster.ErrEntryNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
