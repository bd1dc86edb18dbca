package querybuilder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSelectBuilderWithJoins(t *testing.T) {
	query, args, err := Select("re.id", "p.name", "c.short_name").
		From("roster_entries re").
		Join("players p", "p.id = re.player_id").
		LeftJoin("clubs c", "c.id = p.club_id").
		Where(Eq("re.team_id", "team-1")).
		OrderBy("re.squad_position").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT re.id, p.name, c.short_name FROM roster_entries re JOIN players p ON p.id = re.player_id LEFT JOIN clubs c ON c.id = p.club_id WHERE re.team_id = $1 ORDER BY re.squad_position"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if diff := cmp.Diff([]any{"team-1"}, args); diff != "" {
		t.Fatalf("unexpected args (-want +got):\n%s", diff)
	}
}

func TestSelectBuilderInAndLimit(t *testing.T) {
	query, args, err := Select("id").
		From("players").
		Where(In("id", []any{"p1", "p2"}), Expr("games_played > ?", 3)).
		Limit(5).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM players WHERE id IN ($1, $2) AND games_played > $3 LIMIT 5"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if diff := cmp.Diff([]any{"p1", "p2", 3}, args); diff != "" {
		t.Fatalf("unexpected args (-want +got):\n%s", diff)
	}

	query, _, err = Select("id").From("players").Where(In("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build empty in query: %v", err)
	}
	if query != "SELECT id FROM players WHERE 1=0" {
		t.Fatalf("unexpected empty in query: %s", query)
	}
}

func TestSelectBuilderRequiresTable(t *testing.T) {
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error without table")
	}
}

func TestUpdateBuilderNumbersExpressionArgs(t *testing.T) {
	query, args, err := Update("roster_entries").
		SetExpr("is_captain", "(id = ?)", "e2").
		SetExpr("updated_at", "NOW()").
		Where(Eq("team_id", "team-1"), Expr("(is_captain OR id = ?)", "e2")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE roster_entries SET is_captain = (id = $1), updated_at = NOW() WHERE team_id = $2 AND (is_captain OR id = $3)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if diff := cmp.Diff([]any{"e2", "team-1", "e2"}, args); diff != "" {
		t.Fatalf("unexpected args (-want +got):\n%s", diff)
	}
}

func TestUpdateBuilderPlainSet(t *testing.T) {
	query, args, err := Update("roster_entries").
		Set("player_id", "p9").
		Where(Eq("id", "e4")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE roster_entries SET player_id = $1 WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if diff := cmp.Diff([]any{"p9", "e4"}, args); diff != "" {
		t.Fatalf("unexpected args (-want +got):\n%s", diff)
	}
}

func TestUpdateBuilderRequiresWhere(t *testing.T) {
	if _, _, err := Update("roster_entries").Set("is_captain", false).ToSQL(); err == nil {
		t.Fatalf("expected error for unscoped update")
	}
}
