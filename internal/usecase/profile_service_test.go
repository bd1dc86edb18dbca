package usecase

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fantasy-roster/internal/domain/gameweekscore"
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	"github.com/riskibarqy/fantasy-roster/internal/infrastructure/repository/memory"
	gameweekscoremock "github.com/riskibarqy/fantasy-roster/internal/mocks/domain/gameweekscore"
	playermock "github.com/riskibarqy/fantasy-roster/internal/mocks/domain/player"
)

func newMemoryProfileService() *ProfileService {
	backend, _ := newMemoryBackend()
	return NewProfileService(backend.Players, backend.Scores, 3, nil)
}

func TestProfileService_GetProfile(t *testing.T) {
	service := newMemoryProfileService()

	// idn-gk-01 scored 10, 0, 6, 4, 2, 8 from the latest gameweek back.
	profile, err := service.GetProfile(t.Context(), " idn-gk-01 ")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.Player.Club.ShortName != "PSJ" {
		t.Fatalf("player not joined with club: %+v", profile.Player)
	}
	if profile.Form != 4.4 {
		t.Fatalf("expected form 4.4, got %v", profile.Form)
	}
	if profile.PointsPerMatch != 5.0 {
		t.Fatalf("expected points per match 5.0, got %v", profile.PointsPerMatch)
	}
	if profile.TotalBonus != 2+0+1+1+0+2 {
		t.Fatalf("unexpected total bonus %d", profile.TotalBonus)
	}
	if profile.Scores[0].Gameweek != 6 {
		t.Fatalf("scores should start at the latest gameweek, got %d", profile.Scores[0].Gameweek)
	}

	want := []string{FieldUpcomingFixtures, FieldOwnership, FieldICTIndex}
	if diff := cmp.Diff(want, profile.Unavailable()); diff != "" {
		t.Fatalf("unexpected unavailable fields (-want +got):\n%s", diff)
	}
}

func TestProfileService_GetProfileErrors(t *testing.T) {
	service := newMemoryProfileService()

	if _, err := service.GetProfile(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.GetProfile(t.Context(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProfileService_GetProfileBackendFailure(t *testing.T) {
	t.Parallel()

	players := playermock.NewRepository(t)
	scores := gameweekscoremock.NewRepository(t)
	service := NewProfileService(players, scores, 1, nil)

	players.On("GetByID", anyCtx, "p1").Return(player.Player{ID: "p1"}, true, nil).Maybe()
	scores.On("ListByPlayer", anyCtx, "p1").Return(nil, errors.New("query timeout")).Once()

	_, err := service.GetProfile(t.Context(), "p1")
	require.ErrorIs(t, err, ErrDependencyUnavailable)
}

func TestProfileService_GetProfileSortsUnorderedScores(t *testing.T) {
	t.Parallel()

	players := playermock.NewRepository(t)
	scores := gameweekscoremock.NewRepository(t)
	service := NewProfileService(players, scores, 1, nil)

	players.On("GetByID", anyCtx, "p1").Return(player.Player{ID: "p1"}, true, nil).Once()
	scores.On("ListByPlayer", anyCtx, "p1").Return([]gameweekscore.Score{
		{PlayerID: "p1", Gameweek: 1, TotalPoints: 8},
		{PlayerID: "p1", Gameweek: 6, TotalPoints: 10},
		{PlayerID: "p1", Gameweek: 2, TotalPoints: 2},
		{PlayerID: "p1", Gameweek: 5, TotalPoints: 0},
		{PlayerID: "p1", Gameweek: 3, TotalPoints: 4},
		{PlayerID: "p1", Gameweek: 4, TotalPoints: 6},
	}, nil).Once()

	profile, err := service.GetProfile(t.Context(), "p1")
	require.NoError(t, err)
	require.Equal(t, 4.4, profile.Form)
	require.Equal(t, 5.0, profile.PointsPerMatch)
}

func TestProfileService_RosterForm(t *testing.T) {
	service := newMemoryProfileService()
	entries := seededEntries(t)

	forms, err := service.RosterForm(t.Context(), entries)
	if err != nil {
		t.Fatalf("roster form: %v", err)
	}
	if len(forms) != len(entries) {
		t.Fatalf("expected %d forms, got %d", len(entries), len(forms))
	}
	for i, f := range forms {
		if f.EntryID != entries[i].ID {
			t.Fatalf("form %d out of order: %s vs %s", i, f.EntryID, entries[i].ID)
		}
	}
	if forms[0].PlayerID != "idn-gk-01" || forms[0].Form != 4.4 {
		t.Fatalf("unexpected first form: %+v", forms[0])
	}

	empty, err := service.RosterForm(t.Context(), nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty result, got %v %v", empty, err)
	}
}
