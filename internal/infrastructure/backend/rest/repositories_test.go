package rest

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
	"github.com/riskibarqy/fantasy-roster/internal/platform/resilience"
)

func newTestClient(t *testing.T, breaker resilience.CircuitBreakerConfig, handler fasthttp.RequestHandler) *Client {
	t.Helper()
	return newTestClientWithConfig(t, Config{CircuitBreaker: breaker}, handler)
}

// newTestClientWithConfig serves handler on an in-memory listener. Base URL,
// key, logger and dialer are filled in; other fields of cfg are kept.
func newTestClientWithConfig(t *testing.T, cfg Config, handler fasthttp.RequestHandler) *Client {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	go func() {
		_ = fasthttp.Serve(ln, handler)
	}()
	t.Cleanup(func() {
		_ = ln.Close()
	})

	cfg.BaseURL = "http://backend.test/rest/v1"
	cfg.APIKey = "service-key"
	cfg.Logger = logging.NewNop()
	cfg.Dial = func(string) (net.Conn, error) {
		return ln.Dial()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Second
	}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, body string) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBodyString(body)
}

func TestFantasyTeamRepository_GetByUserID(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, resilience.CircuitBreakerConfig{}, func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Path()) != "/rest/v1/fantasy_teams" {
			t.Errorf("unexpected path: %s", ctx.Path())
		}
		if got := string(ctx.Request.Header.Peek("apikey")); got != "service-key" {
			t.Errorf("unexpected apikey header: %s", got)
		}
		if got := string(ctx.Request.Header.Peek("Authorization")); got != "Bearer service-key" {
			t.Errorf("unexpected authorization header: %s", got)
		}

		switch string(ctx.QueryArgs().Peek("user_id")) {
		case "eq.user-1":
			writeJSON(ctx, fasthttp.StatusOK, `[{"id":"team-1","user_id":"user-1","name":"Garuda FC","total_points":120,"rank":7,"created_at":"2026-08-01T10:00:00Z"}]`)
		default:
			writeJSON(ctx, fasthttp.StatusOK, `[]`)
		}
	})
	repo := NewFantasyTeamRepository(client)

	team, exists, err := repo.GetByUserID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if !exists {
		t.Fatalf("expected team to exist")
	}
	if team.ID != "team-1" || team.Name != "Garuda FC" || team.TotalPoints != 120 || team.Rank != 7 {
		t.Fatalf("unexpected team: %+v", team)
	}

	_, exists, err = repo.GetByUserID(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("get missing team: %v", err)
	}
	if exists {
		t.Fatalf("expected missing team")
	}
}

func TestRosterRepository_ListByTeamDecodesJoinedPlayer(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, resilience.CircuitBreakerConfig{}, func(ctx *fasthttp.RequestCtx) {
		if got := string(ctx.QueryArgs().Peek("order")); got != "squad_position.asc" {
			t.Errorf("unexpected order: %s", got)
		}
		writeJSON(ctx, fasthttp.StatusOK, `[
			{"id":"e1","team_id":"team-1","player_id":"p1","is_starter":true,"is_captain":true,"squad_position":1,
			 "player":{"id":"p1","name":"Keeper","position":"GK","price":50,"club_id":"c1",
			           "club":{"id":"c1","name":"Persija","short_name":"PSJ"}}},
			{"id":"e2","team_id":"team-1","player_id":"p2","is_starter":false,"squad_position":2,
			 "player":{"id":"p2","name":"Striker","position":"FWD","price":80,"club_id":"c2","club":null}}
		]`)
	})

	entries, err := NewRosterRepository(client).ListByTeam(context.Background(), "team-1")
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Position != player.PositionGoalkeeper || !entries[0].IsCaptain || entries[0].Player.Club.ShortName != "PSJ" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].IsStarter || entries[1].Player.Club.ID != "c2" || entries[1].Player.Club.Name != "" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestRosterRepository_ReplacePlayer(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, resilience.CircuitBreakerConfig{}, func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Method()) != fasthttp.MethodPatch {
			t.Errorf("unexpected method: %s", ctx.Method())
		}
		if got := string(ctx.Request.Header.Peek("Prefer")); got != preferRepresentation {
			t.Errorf("unexpected prefer header: %s", got)
		}

		switch string(ctx.QueryArgs().Peek("id")) {
		case "eq.e1":
			writeJSON(ctx, fasthttp.StatusOK, `[{"id":"e1"}]`)
		case "eq.e2":
			writeJSON(ctx, fasthttp.StatusConflict, `{"code":"23505","message":"duplicate key value violates unique constraint"}`)
		default:
			writeJSON(ctx, fasthttp.StatusOK, `[]`)
		}
	})
	repo := NewRosterRepository(client)

	if err := repo.ReplacePlayer(context.Background(), "team-1", "e1", "p9"); err != nil {
		t.Fatalf("replace player: %v", err)
	}
	if err := repo.ReplacePlayer(context.Background(), "team-1", "e2", "p9"); !errors.Is(err, roster.ErrDuplicatePlayer) {
		t.Fatalf("expected ErrDuplicatePlayer, got %v", err)
	}
	if err := repo.ReplacePlayer(context.Background(), "team-1", "missing", "p9"); !errors.Is(err, roster.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestRosterRepository_ArmbandRPC(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, resilience.CircuitBreakerConfig{}, func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Method()) != fasthttp.MethodPost {
			t.Errorf("unexpected method: %s", ctx.Method())
		}
		switch string(ctx.Path()) {
		case "/rest/v1/rpc/set_roster_captain":
			writeJSON(ctx, fasthttp.StatusOK, `true`)
		case "/rest/v1/rpc/set_roster_vice_captain":
			writeJSON(ctx, fasthttp.StatusOK, `false`)
		default:
			writeJSON(ctx, fasthttp.StatusNotFound, `{"message":"unknown function"}`)
		}
	})
	repo := NewRosterRepository(client)

	if err := repo.SetCaptain(context.Background(), "team-1", "e1"); err != nil {
		t.Fatalf("set captain: %v", err)
	}
	if err := repo.SetViceCaptain(context.Background(), "team-1", "e404"); !errors.Is(err, roster.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}

	err := repo.SwapStarter(context.Background(), "team-1", "e12", "e3")
	status, _, ok := apiErrorCode(err)
	if !ok || status != fasthttp.StatusNotFound {
		t.Fatalf("expected 404 api error, got %v", err)
	}
}

func TestClient_CircuitOpensOnTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}, func(ctx *fasthttp.RequestCtx) {
		calls.Add(1)
		writeJSON(ctx, fasthttp.StatusServiceUnavailable, `{"message":"maintenance"}`)
	})
	repo := NewPlayerRepository(client)

	for i := 0; i < 2; i++ {
		if _, err := repo.ListAll(context.Background()); !errors.Is(err, errBackendTransient) {
			t.Fatalf("attempt %d: expected transient error, got %v", i, err)
		}
	}

	_, err := repo.ListAll(context.Background())
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 backend calls, got %d", got)
	}
	if client.Breaker().State() != resilience.CircuitStateOpen {
		t.Fatalf("expected open state, got %s", client.Breaker().State())
	}
}

func TestClient_CanceledContextSkipsRequest(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, resilience.CircuitBreakerConfig{}, func(ctx *fasthttp.RequestCtx) {
		calls.Add(1)
		writeJSON(ctx, fasthttp.StatusOK, `[]`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewScoreRepository(client).ListByPlayer(ctx, "p1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no backend call")
	}
}

func TestClient_CancelAbandonsSlowRequest(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	client := newTestClient(t, resilience.CircuitBreakerConfig{}, func(ctx *fasthttp.RequestCtx) {
		select {
		case <-release:
		case <-time.After(1500 * time.Millisecond):
		}
		writeJSON(ctx, fasthttp.StatusOK, `[{"id":"team-1","user_id":"user-1","name":"Garuda XI"}]`)
	})
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	started := time.Now()
	_, _, err := NewFantasyTeamRepository(client).GetByUserID(ctx, "user-1")
	elapsed := time.Since(started)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if elapsed > time.Second {
		t.Fatalf("expected the call to return soon after cancel, took %s", elapsed)
	}
}

func TestClient_RetriesTransientRead(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClientWithConfig(t, Config{MaxRetries: 2, RetryBackoff: 10 * time.Millisecond}, func(ctx *fasthttp.RequestCtx) {
		if calls.Add(1) == 1 {
			writeJSON(ctx, fasthttp.StatusServiceUnavailable, `{"message":"warming up"}`)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, `[{"player_id":"p1","gameweek":6,"total_points":10}]`)
	})

	scores, err := NewScoreRepository(client).ListByPlayer(context.Background(), "p1")
	if err != nil {
		t.Fatalf("list scores: %v", err)
	}
	if len(scores) != 1 || scores[0].TotalPoints != 10 {
		t.Fatalf("unexpected scores: %+v", scores)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 backend calls, got %d", got)
	}
}

func TestClient_RetriesAreBounded(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClientWithConfig(t, Config{MaxRetries: 2, RetryBackoff: time.Millisecond}, func(ctx *fasthttp.RequestCtx) {
		calls.Add(1)
		writeJSON(ctx, fasthttp.StatusBadGateway, `{"message":"upstream down"}`)
	})

	if _, err := NewScoreRepository(client).ListByPlayer(context.Background(), "p1"); !errors.Is(err, errBackendTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 backend calls, got %d", got)
	}
}

func TestClient_WritesAreNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClientWithConfig(t, Config{MaxRetries: 2, RetryBackoff: time.Millisecond}, func(ctx *fasthttp.RequestCtx) {
		calls.Add(1)
		writeJSON(ctx, fasthttp.StatusServiceUnavailable, `{"message":"maintenance"}`)
	})

	err := NewRosterRepository(client).ReplacePlayer(context.Background(), "team-1", "e4", "p9")
	if !errors.Is(err, errBackendTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single backend call, got %d", got)
	}
}

func TestAbbreviateKeepsRunesWhole(t *testing.T) {
	t.Parallel()

	got := abbreviate("gagal: pemain tidak ditemukan é", 31)
	if !utf8.ValidString(got) {
		t.Fatalf("expected valid UTF-8, got %q", got)
	}
	if got != "gagal: pemain tidak ditemukan ..." {
		t.Fatalf("unexpected abbreviation: %q", got)
	}
	if got := abbreviate("short", 256); got != "short" {
		t.Fatalf("expected short string unchanged, got %q", got)
	}
}

func TestNewClient_ValidatesConfig(t *testing.T) {
	t.Parallel()

	cases := []Config{
		{BaseURL: "", APIKey: "k"},
		{BaseURL: "ftp://backend", APIKey: "k"},
		{BaseURL: "https://backend.test", APIKey: " "},
	}
	for _, cfg := range cases {
		if _, err := NewClient(cfg); err == nil {
			t.Fatalf("expected error for %+v", cfg)
		}
	}
}
