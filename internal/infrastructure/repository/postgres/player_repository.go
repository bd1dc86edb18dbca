package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	qb "github.com/riskibarqy/fantasy-roster/internal/platform/querybuilder"
)

var playerSelectColumns = []string{
	"p.id",
	"p.name",
	"p.position",
	"p.price",
	"p.total_points",
	"p.games_played",
	"p.club_id",
	"c.name AS club_name",
	"c.short_name AS club_short_name",
	"c.logo_url AS club_logo_url",
	"c.jersey_url AS club_jersey_url",
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func selectPlayers() *qb.SelectBuilder {
	return qb.Select(playerSelectColumns...).
		From("players p").
		LeftJoin("clubs c", "c.id = p.club_id")
}

func (r *PlayerRepository) ListAll(ctx context.Context) ([]player.Player, error) {
	query, args, err := selectPlayers().OrderBy("p.name", "p.id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := selectPlayers().Where(qb.Eq("p.id", playerID)).Limit(1).ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by id query: %w", err)
	}

	var row playerRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by id: %w", err)
	}
	return row.toDomain(), true, nil
}
