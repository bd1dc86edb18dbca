package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
)

type EditState string

const (
	EditStateViewing EditState = "viewing"
	EditStateEditing EditState = "editing"
)

type EditStatus struct {
	State          EditState
	StartedAt      time.Time
	AvailableCount int
}

// EditSession toggles a roster between viewing and editing. Entering edit
// mode fetches the full player list once; it is dropped on exit.
type EditSession struct {
	store   *RosterStore
	players player.Repository
	now     func() time.Time

	mu        sync.Mutex
	state     EditState
	startedAt time.Time
	available []player.Player
}

func NewEditSession(store *RosterStore, players player.Repository) *EditSession {
	return &EditSession{
		store:   store,
		players: players,
		now:     time.Now,
		state:   EditStateViewing,
	}
}

// Status reports the edit state. A session left open past the transfer
// deadline is closed here so clients stop offering the picker.
func (e *EditSession) Status() EditStatus {
	e.closeIfDeadlinePassed()

	e.mu.Lock()
	defer e.mu.Unlock()
	return EditStatus{
		State:          e.state,
		StartedAt:      e.startedAt,
		AvailableCount: len(e.available),
	}
}

// Begin enters edit mode. Calling it while already editing refreshes the
// player list.
func (e *EditSession) Begin(ctx context.Context) (status EditStatus, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EditSession.Begin")
	defer func() { endSpan(span, err) }()

	if err := e.store.CheckDeadline(); err != nil {
		return e.Status(), err
	}

	snapshot, err := e.store.EnsureLoaded(ctx)
	if err != nil {
		return e.Status(), err
	}
	if snapshot.Status != RosterStatusReady {
		return e.Status(), fmt.Errorf("%w: create a team before editing the roster", ErrTeamRequired)
	}

	available, err := e.players.ListAll(ctx)
	if err != nil {
		return e.Status(), fmt.Errorf("%w: list all players: %w", ErrDependencyUnavailable, err)
	}

	e.mu.Lock()
	e.state = EditStateEditing
	e.startedAt = e.now().UTC()
	e.available = available
	e.mu.Unlock()

	return e.Status(), nil
}

func (e *EditSession) Cancel() EditStatus {
	e.close()
	return e.Status()
}

// Candidates lists cached players that can fill entryID: same position as
// the slot and not already in the roster.
func (e *EditSession) Candidates(entryID string) (roster.Entry, []player.Player, error) {
	entryID = strings.TrimSpace(entryID)
	if entryID == "" {
		return roster.Entry{}, nil, fmt.Errorf("%w: entry id is required", ErrInvalidInput)
	}

	e.mu.Lock()
	if e.state != EditStateEditing {
		e.mu.Unlock()
		return roster.Entry{}, nil, ErrNotEditing
	}
	available := e.available
	e.mu.Unlock()

	if err := e.store.CheckDeadline(); err != nil {
		e.close()
		return roster.Entry{}, nil, err
	}

	snapshot := e.store.Snapshot()
	slot, ok := roster.Find(snapshot.Entries, entryID)
	if !ok {
		return roster.Entry{}, nil, fmt.Errorf("%w: roster entry %s", ErrNotFound, entryID)
	}

	owned := roster.PlayerIDs(snapshot.Entries)
	out := make([]player.Player, 0, len(available))
	for _, p := range player.FilterByPosition(available, slot.Position) {
		if _, taken := owned[p.ID]; taken {
			continue
		}
		out = append(out, p)
	}
	return slot, out, nil
}

// ReplacePlayer completes the edit: on success the session returns to
// viewing, on failure it stays in edit mode.
func (e *EditSession) ReplacePlayer(ctx context.Context, entryID, playerID string) (RosterSnapshot, error) {
	e.mu.Lock()
	editing := e.state == EditStateEditing
	e.mu.Unlock()
	if !editing {
		return e.store.Snapshot(), ErrNotEditing
	}

	snapshot, err := e.store.ReplacePlayer(ctx, entryID, playerID)
	if err != nil {
		if errors.Is(err, ErrTransferDeadlinePassed) {
			e.close()
		}
		return snapshot, err
	}

	e.close()
	return snapshot, nil
}

// closeIfDeadlinePassed ends an open edit once the transfer window has
// closed and reports whether it did.
func (e *EditSession) closeIfDeadlinePassed() bool {
	if e.store.CheckDeadline() == nil {
		return false
	}
	e.mu.Lock()
	editing := e.state == EditStateEditing
	e.mu.Unlock()
	if !editing {
		return false
	}
	e.close()
	return true
}

func (e *EditSession) close() {
	e.mu.Lock()
	e.state = EditStateViewing
	e.startedAt = time.Time{}
	e.available = nil
	e.mu.Unlock()
}
