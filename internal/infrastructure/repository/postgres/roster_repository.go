package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
	qb "github.com/riskibarqy/fantasy-roster/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

type armband string

const (
	armbandCaptain     armband = "is_captain"
	armbandViceCaptain armband = "is_vice_captain"
)

func (a armband) other() armband {
	if a == armbandCaptain {
		return armbandViceCaptain
	}
	return armbandCaptain
}

func rosterListQuery(teamID string) (string, []any, error) {
	columns := append([]string{
		"re.id AS entry_id",
		"re.team_id",
		"re.is_starter",
		"re.is_captain",
		"re.is_vice_captain",
		"re.squad_position",
	}, playerSelectColumns...)

	return qb.Select(columns...).
		From("roster_entries re").
		Join("players p", "p.id = re.player_id").
		LeftJoin("clubs c", "c.id = p.club_id").
		Where(qb.Eq("re.team_id", teamID)).
		OrderBy("re.squad_position").
		ToSQL()
}

func (r *RosterRepository) ListByTeam(ctx context.Context, teamID string) ([]roster.Entry, error) {
	query, args, err := rosterListQuery(teamID)
	if err != nil {
		return nil, fmt.Errorf("build select roster by team query: %w", err)
	}

	var rows []rosterEntryRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select roster by team: %w", err)
	}

	out := make([]roster.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RosterRepository) ReplacePlayer(ctx context.Context, teamID, entryID, playerID string) error {
	query, args, err := qb.Update("roster_entries").
		Set("player_id", playerID).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("team_id", teamID), qb.Eq("id", entryID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build replace roster player query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", roster.ErrDuplicatePlayer, playerID)
		}
		return fmt.Errorf("replace roster player: %w", err)
	}
	return expectRows(result.RowsAffected, 1, entryID)
}

func (r *RosterRepository) SetCaptain(ctx context.Context, teamID, entryID string) error {
	return r.setArmband(ctx, armbandCaptain, teamID, entryID)
}

func (r *RosterRepository) SetViceCaptain(ctx context.Context, teamID, entryID string) error {
	return r.setArmband(ctx, armbandViceCaptain, teamID, entryID)
}

// armbandQueries clears the flag on every other entry of the team, then sets
// it on the target and strips the opposite flag from it. Clearing first
// keeps the one-captain-per-team unique index satisfied after each statement.
func armbandQueries(flag armband, teamID, entryID string) (clearQuery string, clearArgs []any, setQuery string, setArgs []any, err error) {
	clearQuery, clearArgs, err = qb.Update("roster_entries").
		Set(string(flag), false).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("team_id", teamID), qb.Expr(string(flag)), qb.Expr("id <> ?", entryID)).
		ToSQL()
	if err != nil {
		return "", nil, "", nil, err
	}

	setQuery, setArgs, err = qb.Update("roster_entries").
		Set(string(flag), true).
		Set(string(flag.other()), false).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("team_id", teamID), qb.Eq("id", entryID)).
		ToSQL()
	if err != nil {
		return "", nil, "", nil, err
	}
	return clearQuery, clearArgs, setQuery, setArgs, nil
}

func (r *RosterRepository) setArmband(ctx context.Context, flag armband, teamID, entryID string) error {
	clearQuery, clearArgs, setQuery, setArgs, err := armbandQueries(flag, teamID, entryID)
	if err != nil {
		return fmt.Errorf("build set %s query: %w", flag, err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx set %s: %w", flag, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear %s: %w", flag, err)
	}
	result, err := tx.ExecContext(ctx, setQuery, setArgs...)
	if err != nil {
		return fmt.Errorf("set %s: %w", flag, err)
	}
	if err := expectRows(result.RowsAffected, 1, entryID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set %s tx: %w", flag, err)
	}
	return nil
}

func swapStarterQuery(teamID, benchEntryID, starterEntryID string) (string, []any, error) {
	return qb.Update("roster_entries").
		SetExpr("is_starter", "(id = ?)", benchEntryID).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("team_id", teamID),
			qb.In("id", []any{benchEntryID, starterEntryID}),
		).
		ToSQL()
}

func (r *RosterRepository) SwapStarter(ctx context.Context, teamID, benchEntryID, starterEntryID string) error {
	query, args, err := swapStarterQuery(teamID, benchEntryID, starterEntryID)
	if err != nil {
		return fmt.Errorf("build swap starter query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("swap starter: %w", err)
	}
	return expectRows(result.RowsAffected, 2, benchEntryID+","+starterEntryID)
}

func expectRows(rowsAffected func() (int64, error), want int64, entryRef string) error {
	affected, err := rowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected != want {
		return fmt.Errorf("%w: %s", roster.ErrEntryNotFound, entryRef)
	}
	return nil
}
