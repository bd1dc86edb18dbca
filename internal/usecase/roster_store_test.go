package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasyteam"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
	"github.com/riskibarqy/fantasy-roster/internal/domain/transfer"
	"github.com/riskibarqy/fantasy-roster/internal/infrastructure/repository/memory"
)

var (
	testNow      = time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	testDeadline = testNow.Add(48 * time.Hour)
)

type recordingObserver struct {
	mutations []string
	failures  []string
}

func (o *recordingObserver) RosterMutation(operation, outcome string) {
	o.mutations = append(o.mutations, operation+":"+outcome)
}

func (o *recordingObserver) BackendFailure(operation string) {
	o.failures = append(o.failures, operation)
}

func newMemoryBackend() (Backend, *memory.FantasyTeamRepository) {
	players := memory.NewPlayerRepository(memory.SeedPlayers(), memory.SeedClubs())
	teams := memory.NewFantasyTeamRepository(memory.SeedFantasyTeams())
	return Backend{
		Teams:   teams,
		Rosters: memory.NewRosterRepository(memory.SeedRosterEntries(), players),
		Players: players,
		Scores:  memory.NewScoreRepository(memory.SeedScores()),
	}, teams
}

func newTestStore(t *testing.T, userID string, backend Backend, rules roster.Rules) *RosterStore {
	t.Helper()

	store := NewRosterStore(userID, backend, RosterStoreConfig{
		Rules:  rules,
		Window: transfer.NewWindow(testDeadline),
	})
	store.now = func() time.Time { return testNow }
	return store
}

func TestRosterStore_LoadReady(t *testing.T) {
	backend, _ := newMemoryBackend()
	store := newTestStore(t, memory.DemoUserID, backend, roster.DefaultRules())

	if got := store.Snapshot().Status; got != RosterStatusLoading {
		t.Fatalf("expected loading before first fetch, got %s", got)
	}

	snapshot, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snapshot.Status != RosterStatusReady {
		t.Fatalf("expected ready, got %s", snapshot.Status)
	}
	if snapshot.Team.ID != memory.DemoTeamID {
		t.Fatalf("unexpected team %s", snapshot.Team.ID)
	}
	if len(snapshot.Entries) != 15 {
		t.Fatalf("expected 15 entries, got %d", len(snapshot.Entries))
	}
	if !snapshot.LoadedAt.Equal(testNow) {
		t.Fatalf("unexpected loaded at %v", snapshot.LoadedAt)
	}
}

func TestRosterStore_LoadWithoutTeamNeedsTeam(t *testing.T) {
	backend, teams := newMemoryBackend()
	store := newTestStore(t, "new-user", backend, roster.DefaultRules())

	snapshot, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("missing team must not be an error, got %v", err)
	}
	if snapshot.Status != RosterStatusNeedsTeam {
		t.Fatalf("expected needs_team, got %s", snapshot.Status)
	}

	_, err = store.SetCaptain(t.Context(), "entry-01")
	if !errors.Is(err, ErrTeamRequired) {
		t.Fatalf("expected ErrTeamRequired, got %v", err)
	}

	teams.Put(fantasyteam.Team{ID: memory.DemoTeamID, UserID: "new-user", Name: "Fresh XI"})
	snapshot, err = store.NotifyTeamCreated(t.Context())
	if err != nil {
		t.Fatalf("notify team created: %v", err)
	}
	if snapshot.Status != RosterStatusReady || snapshot.Team.Name != "Fresh XI" {
		t.Fatalf("expected ready after team creation, got %+v", snapshot)
	}
}

func TestRosterStore_SetCaptainLeavesSingleCaptain(t *testing.T) {
	backend, _ := newMemoryBackend()
	observer := &recordingObserver{}
	store := NewRosterStore(memory.DemoUserID, backend, RosterStoreConfig{
		Rules:    roster.DefaultRules(),
		Window:   transfer.NewWindow(testDeadline),
		Observer: observer,
	})
	store.now = func() time.Time { return testNow }

	before, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	previous, ok := roster.Captain(before.Entries)
	if !ok {
		t.Fatalf("seed roster should have a captain")
	}

	after, err := store.SetCaptain(t.Context(), "entry-02")
	if err != nil {
		t.Fatalf("set captain: %v", err)
	}

	captains := 0
	for _, e := range after.Entries {
		if e.IsCaptain {
			captains++
		}
	}
	if captains != 1 {
		t.Fatalf("expected exactly one captain, got %d", captains)
	}
	current, _ := roster.Captain(after.Entries)
	if current.ID != "entry-02" || current.ID == previous.ID {
		t.Fatalf("unexpected captain %s (previous %s)", current.ID, previous.ID)
	}
	if len(observer.mutations) != 1 || observer.mutations[0] != "set_captain:success" {
		t.Fatalf("unexpected observed mutations: %v", observer.mutations)
	}
}

func TestRosterStore_CaptainAndViceNeverCoincide(t *testing.T) {
	backend, _ := newMemoryBackend()
	store := newTestStore(t, memory.DemoUserID, backend, roster.DefaultRules())

	before, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	vice, _ := roster.ViceCaptain(before.Entries)

	after, err := store.SetCaptain(t.Context(), vice.ID)
	if err != nil {
		t.Fatalf("set captain: %v", err)
	}
	captain, ok := roster.Captain(after.Entries)
	if !ok || captain.ID != vice.ID {
		t.Fatalf("expected %s to be captain", vice.ID)
	}
	if v, ok := roster.ViceCaptain(after.Entries); ok && v.ID == captain.ID {
		t.Fatalf("captain and vice captain are the same entry %s", v.ID)
	}

	after, err = store.SetViceCaptain(t.Context(), captain.ID)
	if err != nil {
		t.Fatalf("set vice captain: %v", err)
	}
	if err := roster.ValidateArmbands(after.Entries); err != nil {
		t.Fatalf("armbands invalid after vice change: %v", err)
	}
	if _, ok := roster.Captain(after.Entries); ok {
		t.Fatalf("demoted captain should no longer wear the armband")
	}
}

func TestRosterStore_ReplacePlayerPositionPolicy(t *testing.T) {
	tests := []struct {
		name      string
		enforce   bool
		playerID  string
		targetErr error
	}{
		{name: "same position", playerID: "idn-def-04"},
		{name: "different position accepted by default", playerID: "idn-fwd-04"},
		{name: "different position rejected when enforced", enforce: true, playerID: "idn-fwd-04", targetErr: roster.ErrPositionMismatch},
		{name: "player already in roster", playerID: "idn-def-01", targetErr: roster.ErrDuplicatePlayer},
		{name: "unknown player", playerID: "nobody", targetErr: ErrNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			backend, _ := newMemoryBackend()
			rules := roster.DefaultRules()
			rules.EnforcePositionMatch = tc.enforce
			store := newTestStore(t, memory.DemoUserID, backend, rules)

			// entry-04 holds a starting defender.
			snapshot, err := store.ReplacePlayer(t.Context(), "entry-04", tc.playerID)
			if tc.targetErr != nil {
				if !errors.Is(err, tc.targetErr) {
					t.Fatalf("expected %v, got %v", tc.targetErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("replace player: %v", err)
			}

			entry, ok := roster.Find(snapshot.Entries, "entry-04")
			if !ok || entry.PlayerID != tc.playerID {
				t.Fatalf("replacement not visible after refetch: %+v", entry)
			}
		})
	}
}

func TestRosterStore_SwapStarter(t *testing.T) {
	backend, _ := newMemoryBackend()
	store := newTestStore(t, memory.DemoUserID, backend, roster.DefaultRules())

	// entry-13 is a bench defender, entry-05 a starting defender.
	snapshot, err := store.SwapStarter(t.Context(), "entry-13", "entry-05")
	if err != nil {
		t.Fatalf("swap starter: %v", err)
	}
	if got := roster.FormationCounts(snapshot.Entries).String(); got != "4-4-2" {
		t.Fatalf("unexpected formation after like-for-like swap: %s", got)
	}

	// entry-12 is the bench goalkeeper.
	_, err = store.SwapStarter(t.Context(), "entry-12", "entry-05")
	if !errors.Is(err, roster.ErrIncompatibleSwap) {
		t.Fatalf("expected incompatible swap, got %v", err)
	}
}

func TestRosterStore_SwapStarterRejectsBrokenFormation(t *testing.T) {
	backend, _ := newMemoryBackend()
	store := newTestStore(t, memory.DemoUserID, backend, roster.DefaultRules())

	// Bench midfielder in for a defender gives 3-5-2.
	if _, err := store.SwapStarter(t.Context(), "entry-14", "entry-02"); err != nil {
		t.Fatalf("setup swap: %v", err)
	}

	// Bench forward in for another defender would leave two defenders.
	_, err := store.SwapStarter(t.Context(), "entry-15", "entry-03")
	if !errors.Is(err, roster.ErrInvalidFormation) {
		t.Fatalf("expected invalid formation, got %v", err)
	}
	if got := roster.FormationCounts(store.Snapshot().Entries).String(); got != "3-5-2" {
		t.Fatalf("state should stay at 3-5-2, got %s", got)
	}
}

func TestRosterStore_RejectsMutationAfterDeadline(t *testing.T) {
	backend, _ := newMemoryBackend()
	store := newTestStore(t, memory.DemoUserID, backend, roster.DefaultRules())
	if _, err := store.Load(t.Context()); err != nil {
		t.Fatalf("load: %v", err)
	}

	store.now = func() time.Time { return testDeadline }

	if _, err := store.SetCaptain(t.Context(), "entry-02"); !errors.Is(err, ErrTransferDeadlinePassed) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if _, err := store.ReplacePlayer(t.Context(), "entry-02", "idn-def-04"); !errors.Is(err, ErrTransferDeadlinePassed) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if _, err := store.SwapStarter(t.Context(), "entry-13", "entry-05"); !errors.Is(err, ErrTransferDeadlinePassed) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestRosterStore_UnknownEntry(t *testing.T) {
	backend, _ := newMemoryBackend()
	store := newTestStore(t, memory.DemoUserID, backend, roster.DefaultRules())

	if _, err := store.SetViceCaptain(t.Context(), "entry-99"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.ReplacePlayer(t.Context(), "entry-99", "idn-def-04"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMutationOutcome(t *testing.T) {
	tests := map[string]error{
		OutcomeSuccess:        nil,
		OutcomeDeadlinePassed: ErrTransferDeadlinePassed,
		OutcomeInvalid:        roster.ErrInvalidFormation,
		OutcomeNotFound:       ErrNotFound,
		OutcomeBackendFailure: backendError("x", errors.New("timeout")),
		OutcomeTeamRequired:   ErrTeamRequired,
	}
	for want, err := range tests {
		if got := MutationOutcome(err); got != want {
			t.Fatalf("outcome for %v: got %s want %s", err, got, want)
		}
	}
}
