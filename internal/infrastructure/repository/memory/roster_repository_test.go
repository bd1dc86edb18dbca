package memory

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
)

func newSeededRosterRepository() *RosterRepository {
	players := NewPlayerRepository(SeedPlayers(), SeedClubs())
	return NewRosterRepository(SeedRosterEntries(), players)
}

func TestRosterRepository_ListByTeamJoinsPlayers(t *testing.T) {
	repo := newSeededRosterRepository()

	entries, err := repo.ListByTeam(t.Context(), DemoTeamID)
	if err != nil {
		t.Fatalf("list by team: %v", err)
	}
	if len(entries) != 15 {
		t.Fatalf("expected 15 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.SquadPosition != i+1 {
			t.Fatalf("entries not ordered by squad position at %d: %d", i, e.SquadPosition)
		}
		if e.Player.ID != e.PlayerID || e.Player.Club.ID == "" {
			t.Fatalf("entry %s not joined with player and club: %+v", e.ID, e.Player)
		}
		if e.Position != e.Player.Position {
			t.Fatalf("entry %s position %s should follow player %s", e.ID, e.Position, e.Player.Position)
		}
	}
	if got := roster.FormationCounts(entries).String(); got != "4-4-2" {
		t.Fatalf("unexpected seeded formation %s", got)
	}
}

func TestRosterRepository_SetCaptainLeavesExactlyOne(t *testing.T) {
	repo := newSeededRosterRepository()

	// entry-06 is the current vice captain.
	if err := repo.SetCaptain(t.Context(), DemoTeamID, "entry-06"); err != nil {
		t.Fatalf("set captain: %v", err)
	}

	entries, err := repo.ListByTeam(t.Context(), DemoTeamID)
	if err != nil {
		t.Fatalf("list by team: %v", err)
	}
	captains := 0
	for _, e := range entries {
		if e.IsCaptain {
			captains++
			if e.ID != "entry-06" {
				t.Fatalf("unexpected captain %s", e.ID)
			}
		}
	}
	if captains != 1 {
		t.Fatalf("expected exactly one captain, got %d", captains)
	}
	if _, ok := roster.ViceCaptain(entries); ok {
		t.Fatalf("promoted vice captain should lose the vice flag")
	}
}

func TestRosterRepository_RejectsForeignEntry(t *testing.T) {
	repo := newSeededRosterRepository()

	err := repo.ReplacePlayer(t.Context(), "other-team", "entry-01", "idn-gk-03")
	if !errors.Is(err, roster.ErrEntryNotFound) {
		t.Fatalf("expected entry not found, got %v", err)
	}
}

func TestRosterRepository_SwapStarter(t *testing.T) {
	repo := newSeededRosterRepository()

	if err := repo.SwapStarter(t.Context(), DemoTeamID, "entry-13", "entry-05"); err != nil {
		t.Fatalf("swap starter: %v", err)
	}
	entries, err := repo.ListByTeam(t.Context(), DemoTeamID)
	if err != nil {
		t.Fatalf("list by team: %v", err)
	}
	bench, _ := roster.Find(entries, "entry-13")
	starter, _ := roster.Find(entries, "entry-05")
	if !bench.IsStarter || starter.IsStarter {
		t.Fatalf("swap not applied: bench=%v starter=%v", bench.IsStarter, starter.IsStarter)
	}
}
