package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasyteam"
	qb "github.com/riskibarqy/fantasy-roster/internal/platform/querybuilder"
)

type FantasyTeamRepository struct {
	db *sqlx.DB
}

func NewFantasyTeamRepository(db *sqlx.DB) *FantasyTeamRepository {
	return &FantasyTeamRepository{db: db}
}

func (r *FantasyTeamRepository) GetByUserID(ctx context.Context, userID string) (fantasyteam.Team, bool, error) {
	query, args, err := qb.Select(
		"id",
		"user_id",
		"name",
		"total_points",
		"gameweek_points",
		"budget_remaining",
		"rank",
		"created_at",
	).From("fantasy_teams").
		Where(qb.Eq("user_id", userID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return fantasyteam.Team{}, false, fmt.Errorf("build select fantasy team by user query: %w", err)
	}

	var row fantasyTeamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasyteam.Team{}, false, nil
		}
		return fantasyteam.Team{}, false, fmt.Errorf("get fantasy team by user: %w", err)
	}
	return row.toDomain(), true, nil
}
