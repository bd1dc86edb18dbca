package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
)

type playerLookup interface {
	GetByID(ctx context.Context, playerID string) (player.Player, bool, error)
}

// RosterRepository keeps entries per team. Every write runs under one lock,
// which makes captain and vice-captain updates atomic.
type RosterRepository struct {
	mu      sync.RWMutex
	entries map[string]roster.Entry
	players playerLookup
}

func NewRosterRepository(entries []roster.Entry, players playerLookup) *RosterRepository {
	byID := make(map[string]roster.Entry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	return &RosterRepository{entries: byID, players: players}
}

func (r *RosterRepository) ListByTeam(ctx context.Context, teamID string) ([]roster.Entry, error) {
	r.mu.RLock()
	out := make([]roster.Entry, 0, 15)
	for _, e := range r.entries {
		if e.TeamID == teamID {
			out = append(out, e)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].SquadPosition < out[j].SquadPosition
	})

	for i := range out {
		p, ok, err := r.players.GetByID(ctx, out[i].PlayerID)
		if err != nil {
			return nil, fmt.Errorf("join player %s: %w", out[i].PlayerID, err)
		}
		if !ok {
			return nil, fmt.Errorf("join player %s: player missing", out[i].PlayerID)
		}
		out[i].Player = p
		out[i].Position = p.Position
	}
	return out, nil
}

func (r *RosterRepository) ReplacePlayer(_ context.Context, teamID, entryID, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.teamEntry(teamID, entryID)
	if err != nil {
		return err
	}
	e.PlayerID = playerID
	r.entries[entryID] = e
	return nil
}

func (r *RosterRepository) SetCaptain(_ context.Context, teamID, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.teamEntry(teamID, entryID); err != nil {
		return err
	}
	for id, e := range r.entries {
		if e.TeamID != teamID {
			continue
		}
		e.IsCaptain = id == entryID
		if id == entryID {
			e.IsViceCaptain = false
		}
		r.entries[id] = e
	}
	return nil
}

func (r *RosterRepository) SetViceCaptain(_ context.Context, teamID, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.teamEntry(teamID, entryID); err != nil {
		return err
	}
	for id, e := range r.entries {
		if e.TeamID != teamID {
			continue
		}
		e.IsViceCaptain = id == entryID
		if id == entryID {
			e.IsCaptain = false
		}
		r.entries[id] = e
	}
	return nil
}

func (r *RosterRepository) SwapStarter(_ context.Context, teamID, benchEntryID, starterEntryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bench, err := r.teamEntry(teamID, benchEntryID)
	if err != nil {
		return err
	}
	starter, err := r.teamEntry(teamID, starterEntryID)
	if err != nil {
		return err
	}
	bench.IsStarter, starter.IsStarter = true, false
	r.entries[benchEntryID] = bench
	r.entries[starterEntryID] = starter
	return nil
}

func (r *RosterRepository) teamEntry(teamID, entryID string) (roster.Entry, error) {
	e, ok := r.entries[entryID]
	if !ok || e.TeamID != teamID {
		return roster.Entry{}, fmt.Errorf("%w: %s", roster.ErrEntryNotFound, entryID)
	}
	return e, nil
}
