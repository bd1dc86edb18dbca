package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-roster/internal/domain/club"
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	ordered []player.Player
	index   map[string]player.Player
}

// NewPlayerRepository joins every player with its club.
func NewPlayerRepository(players []player.Player, clubs []club.Club) *PlayerRepository {
	clubIndex := make(map[string]club.Club, len(clubs))
	for _, c := range clubs {
		clubIndex[c.ID] = c
	}

	ordered := make([]player.Player, 0, len(players))
	index := make(map[string]player.Player, len(players))
	for _, p := range players {
		p.Club = clubIndex[p.ClubID]
		ordered = append(ordered, p)
		index[p.ID] = p
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Name < ordered[j].Name
	})

	return &PlayerRepository{ordered: ordered, index: index}
}

func (r *PlayerRepository) ListAll(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.ordered))
	out = append(out, r.ordered...)
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.index[playerID]
	return p, ok, nil
}
