package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasyteam"
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
	"github.com/riskibarqy/fantasy-roster/internal/infrastructure/repository/memory"
)

func newTestEditSession(t *testing.T) (*EditSession, *RosterStore) {
	t.Helper()

	backend, _ := newMemoryBackend()
	store := newTestStore(t, memory.DemoUserID, backend, roster.DefaultRules())
	session := NewEditSession(store, backend.Players)
	session.now = func() time.Time { return testNow }
	return session, store
}

func TestEditSession_BeginAndCandidates(t *testing.T) {
	session, store := newTestEditSession(t)

	if _, _, err := session.Candidates("entry-02"); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing before begin, got %v", err)
	}

	status, err := session.Begin(t.Context())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if status.State != EditStateEditing || status.AvailableCount != len(memory.SeedPlayers()) {
		t.Fatalf("unexpected status after begin: %+v", status)
	}

	slot, candidates, err := session.Candidates("entry-02")
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if slot.Position != player.PositionDefender {
		t.Fatalf("expected defender slot, got %s", slot.Position)
	}

	owned := roster.PlayerIDs(store.Snapshot().Entries)
	want := []string{"idn-def-04", "idn-def-07"}
	if len(candidates) != len(want) {
		t.Fatalf("expected %d candidates, got %d: %+v", len(want), len(candidates), candidates)
	}
	for _, c := range candidates {
		if c.Position != player.PositionDefender {
			t.Fatalf("candidate %s has position %s", c.ID, c.Position)
		}
		if _, taken := owned[c.ID]; taken {
			t.Fatalf("candidate %s is already in the roster", c.ID)
		}
	}
	// Ordered by name: Dusan Stevanovic before Ondrej Kudela.
	if candidates[0].ID != want[0] || candidates[1].ID != want[1] {
		t.Fatalf("unexpected candidate order: %s, %s", candidates[0].ID, candidates[1].ID)
	}
}

func TestEditSession_ReplacePlayerClosesOnSuccess(t *testing.T) {
	session, _ := newTestEditSession(t)

	if _, err := session.ReplacePlayer(t.Context(), "entry-02", "idn-def-04"); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing, got %v", err)
	}

	if _, err := session.Begin(t.Context()); err != nil {
		t.Fatalf("begin: %v", err)
	}

	// Duplicate player keeps the session open.
	if _, err := session.ReplacePlayer(t.Context(), "entry-02", "idn-def-02"); !errors.Is(err, roster.ErrDuplicatePlayer) {
		t.Fatalf("expected duplicate player, got %v", err)
	}
	if session.Status().State != EditStateEditing {
		t.Fatalf("session should stay in edit mode after a failed replacement")
	}

	snapshot, err := session.ReplacePlayer(t.Context(), "entry-02", "idn-def-04")
	if err != nil {
		t.Fatalf("replace player: %v", err)
	}
	entry, _ := roster.Find(snapshot.Entries, "entry-02")
	if entry.PlayerID != "idn-def-04" {
		t.Fatalf("replacement not applied: %+v", entry)
	}

	status := session.Status()
	if status.State != EditStateViewing || status.AvailableCount != 0 {
		t.Fatalf("expected viewing with empty cache, got %+v", status)
	}
}

func TestEditSession_Cancel(t *testing.T) {
	session, _ := newTestEditSession(t)

	if _, err := session.Begin(t.Context()); err != nil {
		t.Fatalf("begin: %v", err)
	}
	status := session.Cancel()
	if status.State != EditStateViewing || !status.StartedAt.IsZero() {
		t.Fatalf("unexpected status after cancel: %+v", status)
	}
}

func TestEditSession_BeginAfterDeadline(t *testing.T) {
	session, store := newTestEditSession(t)
	store.now = func() time.Time { return testDeadline.Add(time.Minute) }

	_, err := session.Begin(t.Context())
	if !errors.Is(err, ErrTransferDeadlinePassed) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if session.Status().State != EditStateViewing {
		t.Fatalf("session must stay in viewing")
	}
}

func TestEditSession_DeadlinePassingMidEditClosesPicker(t *testing.T) {
	session, store := newTestEditSession(t)

	if _, err := session.Begin(t.Context()); err != nil {
		t.Fatalf("begin: %v", err)
	}
	store.now = func() time.Time { return testDeadline.Add(time.Second) }

	_, candidates, err := session.Candidates("entry-02")
	if !errors.Is(err, ErrTransferDeadlinePassed) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if candidates != nil {
		t.Fatalf("expected no candidates after the deadline, got %d", len(candidates))
	}

	status := session.Status()
	if status.State != EditStateViewing || status.AvailableCount != 0 {
		t.Fatalf("expected session closed after the deadline, got %+v", status)
	}
}

func TestEditSession_StatusClosesExpiredEdit(t *testing.T) {
	session, store := newTestEditSession(t)

	if _, err := session.Begin(t.Context()); err != nil {
		t.Fatalf("begin: %v", err)
	}
	store.now = func() time.Time { return testDeadline.Add(time.Second) }

	if status := session.Status(); status.State != EditStateViewing {
		t.Fatalf("expected viewing once the deadline passed, got %s", status.State)
	}
	if _, err := session.ReplacePlayer(t.Context(), "entry-02", "idn-def-04"); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing after expiry, got %v", err)
	}
}

func TestEditSession_BeginWithoutTeam(t *testing.T) {
	backend, _ := newMemoryBackend()
	store := newTestStore(t, "new-user", backend, roster.DefaultRules())
	session := NewEditSession(store, backend.Players)

	_, err := session.Begin(t.Context())
	if !errors.Is(err, ErrTeamRequired) {
		t.Fatalf("expected ErrTeamRequired, got %v", err)
	}
}

func TestEditSession_PlayersFetchedOncePerBegin(t *testing.T) {
	t.Parallel()

	m, backend := newMockBackend(t)
	store := NewRosterStore(memory.DemoUserID, backend, RosterStoreConfig{Rules: roster.DefaultRules()})
	session := NewEditSession(store, backend.Players)

	m.teams.On("GetByUserID", anyCtx, memory.DemoUserID).
		Return(fantasyteam.Team{ID: memory.DemoTeamID, UserID: memory.DemoUserID}, true, nil).Once()
	m.rosters.On("ListByTeam", anyCtx, memory.DemoTeamID).Return(seededEntries(t), nil).Once()
	m.players.On("ListAll", anyCtx).Return(memory.SeedPlayers(), nil).Once()

	_, err := session.Begin(t.Context())
	require.NoError(t, err)

	for _, entryID := range []string{"entry-01", "entry-02", "entry-07", "entry-10"} {
		_, _, err := session.Candidates(entryID)
		require.NoError(t, err)
	}

	m.players.On("ListAll", anyCtx).Return(nil, errors.New("down")).Once()
	_, err = session.Begin(t.Context())
	require.ErrorIs(t, err, ErrDependencyUnavailable)
	require.Equal(t, EditStateEditing, session.Status().State)
}
