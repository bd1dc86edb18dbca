package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-roster/internal/domain/gameweekscore"
)

type ScoreRepository struct {
	mu       sync.RWMutex
	byPlayer map[string][]gameweekscore.Score
}

func NewScoreRepository(scores []gameweekscore.Score) *ScoreRepository {
	byPlayer := make(map[string][]gameweekscore.Score)
	for _, s := range scores {
		byPlayer[s.PlayerID] = append(byPlayer[s.PlayerID], s)
	}
	for id := range byPlayer {
		gameweekscore.SortRecentFirst(byPlayer[id])
	}
	return &ScoreRepository{byPlayer: byPlayer}
}

func (r *ScoreRepository) ListByPlayer(_ context.Context, playerID string) ([]gameweekscore.Score, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byPlayer[playerID]
	out := make([]gameweekscore.Score, 0, len(items))
	out = append(out, items...)
	return out, nil
}
