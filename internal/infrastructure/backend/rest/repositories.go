package rest

import (
	"context"
	"fmt"
	"net/url"

	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasyteam"
	"github.com/riskibarqy/fantasy-roster/internal/domain/gameweekscore"
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
)

const uniqueViolationCode = "23505"

type FantasyTeamRepository struct {
	client *Client
}

func NewFantasyTeamRepository(client *Client) *FantasyTeamRepository {
	return &FantasyTeamRepository{client: client}
}

func (r *FantasyTeamRepository) GetByUserID(ctx context.Context, userID string) (fantasyteam.Team, bool, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("user_id", eq(userID))
	query.Set("limit", "1")

	var rows []fantasyTeamPayload
	if err := r.client.do(ctx, request{method: fasthttp.MethodGet, path: "/fantasy_teams", query: query}, &rows); err != nil {
		return fantasyteam.Team{}, false, fmt.Errorf("get fantasy team by user: %w", err)
	}
	if len(rows) == 0 {
		return fantasyteam.Team{}, false, nil
	}
	return rows[0].toDomain(), true, nil
}

type PlayerRepository struct {
	client *Client
}

func NewPlayerRepository(client *Client) *PlayerRepository {
	return &PlayerRepository{client: client}
}

func (r *PlayerRepository) ListAll(ctx context.Context) ([]player.Player, error) {
	query := url.Values{}
	query.Set("select", playerSelect)
	query.Set("order", "name.asc,id.asc")

	var rows []playerPayload
	if err := r.client.do(ctx, request{method: fasthttp.MethodGet, path: "/players", query: query}, &rows); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query := url.Values{}
	query.Set("select", playerSelect)
	query.Set("id", eq(playerID))
	query.Set("limit", "1")

	var rows []playerPayload
	if err := r.client.do(ctx, request{method: fasthttp.MethodGet, path: "/players", query: query}, &rows); err != nil {
		return player.Player{}, false, fmt.Errorf("get player by id: %w", err)
	}
	if len(rows) == 0 {
		return player.Player{}, false, nil
	}
	return rows[0].toDomain(), true, nil
}

type ScoreRepository struct {
	client *Client
}

func NewScoreRepository(client *Client) *ScoreRepository {
	return &ScoreRepository{client: client}
}

func (r *ScoreRepository) ListByPlayer(ctx context.Context, playerID string) ([]gameweekscore.Score, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("player_id", eq(playerID))
	query.Set("order", "gameweek.desc")

	var rows []scorePayload
	if err := r.client.do(ctx, request{method: fasthttp.MethodGet, path: "/gameweek_scores", query: query}, &rows); err != nil {
		return nil, fmt.Errorf("list scores by player: %w", err)
	}

	out := make([]gameweekscore.Score, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// RosterRepository writes through single requests: a filtered PATCH for
// player replacement and RPC functions for the multi-row flag updates.
type RosterRepository struct {
	client *Client
}

func NewRosterRepository(client *Client) *RosterRepository {
	return &RosterRepository{client: client}
}

func (r *RosterRepository) ListByTeam(ctx context.Context, teamID string) ([]roster.Entry, error) {
	query := url.Values{}
	query.Set("select", rosterSelect)
	query.Set("team_id", eq(teamID))
	query.Set("order", "squad_position.asc")

	var rows []rosterEntryPayload
	if err := r.client.do(ctx, request{method: fasthttp.MethodGet, path: "/roster_entries", query: query}, &rows); err != nil {
		return nil, fmt.Errorf("list roster by team: %w", err)
	}

	out := make([]roster.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RosterRepository) ReplacePlayer(ctx context.Context, teamID, entryID, playerID string) error {
	query := url.Values{}
	query.Set("id", eq(entryID))
	query.Set("team_id", eq(teamID))
	query.Set("select", "id")

	var rows []struct {
		ID string `json:"id"`
	}
	err := r.client.do(ctx, request{
		method: fasthttp.MethodPatch,
		path:   "/roster_entries",
		query:  query,
		body:   replacePlayerPayload{PlayerID: playerID},
		prefer: preferRepresentation,
	}, &rows)
	if err != nil {
		if _, code, ok := apiErrorCode(err); ok && code == uniqueViolationCode {
			return fmt.Errorf("%w: %s", roster.ErrDuplicatePlayer, playerID)
		}
		return fmt.Errorf("replace roster player: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: %s", roster.ErrEntryNotFound, entryID)
	}
	return nil
}

func (r *RosterRepository) SetCaptain(ctx context.Context, teamID, entryID string) error {
	return r.callArmbandRPC(ctx, "set_roster_captain", teamID, entryID)
}

func (r *RosterRepository) SetViceCaptain(ctx context.Context, teamID, entryID string) error {
	return r.callArmbandRPC(ctx, "set_roster_vice_captain", teamID, entryID)
}

func (r *RosterRepository) callArmbandRPC(ctx context.Context, fn, teamID, entryID string) error {
	updated, err := r.callRPC(ctx, fn, armbandRPCPayload{TeamID: teamID, EntryID: entryID})
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("%w: %s", roster.ErrEntryNotFound, entryID)
	}
	return nil
}

func (r *RosterRepository) SwapStarter(ctx context.Context, teamID, benchEntryID, starterEntryID string) error {
	updated, err := r.callRPC(ctx, "swap_roster_starter", swapRPCPayload{
		TeamID:         teamID,
		BenchEntryID:   benchEntryID,
		StarterEntryID: starterEntryID,
	})
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("%w: %s,%s", roster.ErrEntryNotFound, benchEntryID, starterEntryID)
	}
	return nil
}

// callRPC invokes a boolean-returning database function.
func (r *RosterRepository) callRPC(ctx context.Context, fn string, payload any) (bool, error) {
	var updated bool
	err := r.client.do(ctx, request{
		method: fasthttp.MethodPost,
		path:   "/rpc/" + fn,
		body:   payload,
	}, &updated)
	if err != nil {
		return false, fmt.Errorf("call %s: %w", fn, err)
	}
	return updated, nil
}
