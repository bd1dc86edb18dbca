package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasyteam"
)

type FantasyTeamRepository struct {
	mu     sync.RWMutex
	byUser map[string]fantasyteam.Team
}

func NewFantasyTeamRepository(teams []fantasyteam.Team) *FantasyTeamRepository {
	byUser := make(map[string]fantasyteam.Team, len(teams))
	for _, t := range teams {
		byUser[t.UserID] = t
	}
	return &FantasyTeamRepository{byUser: byUser}
}

func (r *FantasyTeamRepository) GetByUserID(_ context.Context, userID string) (fantasyteam.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byUser[userID]
	return t, ok, nil
}

// Put stores a team, standing in for the external team-creation flow.
func (r *FantasyTeamRepository) Put(team fantasyteam.Team) {
	r.mu.Lock()
	r.byUser[team.UserID] = team
	r.mu.Unlock()
}
