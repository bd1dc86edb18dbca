package cache

import (
	"context"

	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	basecache "github.com/riskibarqy/fantasy-roster/internal/platform/cache"
)

const playersAllKey = "players:all"

// PlayerRepository serves the full player list from a shared blob cache.
// Single-player reads are answered from the cached list when possible.
type PlayerRepository struct {
	next   player.Repository
	loader *basecache.JSONLoader
}

func NewPlayerRepository(next player.Repository, loader *basecache.JSONLoader) *PlayerRepository {
	return &PlayerRepository{next: next, loader: loader}
}

func (r *PlayerRepository) ListAll(ctx context.Context) ([]player.Player, error) {
	items, err := basecache.LoadJSON(ctx, r.loader, playersAllKey, r.next.ListAll)
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	items, err := basecache.LoadJSON(ctx, r.loader, playersAllKey, r.next.ListAll)
	if err == nil {
		for _, p := range items {
			if p.ID == playerID {
				return p, true, nil
			}
		}
	}
	return r.next.GetByID(ctx, playerID)
}

func (r *PlayerRepository) Invalidate(ctx context.Context) error {
	return r.loader.Invalidate(ctx, playersAllKey)
}
