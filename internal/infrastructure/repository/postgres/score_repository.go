package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-roster/internal/domain/gameweekscore"
	qb "github.com/riskibarqy/fantasy-roster/internal/platform/querybuilder"
)

type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) ListByPlayer(ctx context.Context, playerID string) ([]gameweekscore.Score, error) {
	query, args, err := qb.Select(
		"player_id",
		"gameweek",
		"minutes",
		"goals",
		"assists",
		"clean_sheet",
		"yellow_cards",
		"red_cards",
		"bonus_points",
		"total_points",
	).From("gameweek_scores").
		Where(qb.Eq("player_id", playerID)).
		OrderBy("gameweek DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select scores by player query: %w", err)
	}

	var rows []gameweekScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select scores by player: %w", err)
	}

	out := make([]gameweekscore.Score, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
