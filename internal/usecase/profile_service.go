package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fantasy-roster/internal/domain/gameweekscore"
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
)

const (
	defaultFormWorkers = 4

	FieldUpcomingFixtures = "upcoming_fixtures"
	FieldOwnership        = "ownership"
	FieldICTIndex         = "ict_index"
)

// PlayerProfile aggregates a player's score history. Fixture, ownership and
// ICT figures have no data source yet and stay nil.
type PlayerProfile struct {
	Player         player.Player
	Scores         []gameweekscore.Score
	Form           float64
	PointsPerMatch float64
	TotalBonus     int

	UpcomingFixtures []string
	OwnershipPercent *float64
	ICTIndex         *float64
}

// Unavailable lists the profile fields without a data source.
func (p PlayerProfile) Unavailable() []string {
	out := make([]string, 0, 3)
	if p.UpcomingFixtures == nil {
		out = append(out, FieldUpcomingFixtures)
	}
	if p.OwnershipPercent == nil {
		out = append(out, FieldOwnership)
	}
	if p.ICTIndex == nil {
		out = append(out, FieldICTIndex)
	}
	return out
}

type PlayerForm struct {
	EntryID        string
	PlayerID       string
	PlayerName     string
	Position       player.Position
	IsStarter      bool
	Form           float64
	PointsPerMatch float64
	TotalBonus     int
}

type ProfileService struct {
	players player.Repository
	scores  gameweekscore.Repository
	workers int
	logger  *logging.Logger
}

func NewProfileService(players player.Repository, scores gameweekscore.Repository, workers int, logger *logging.Logger) *ProfileService {
	if workers < 1 {
		workers = defaultFormWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ProfileService{
		players: players,
		scores:  scores,
		workers: workers,
		logger:  logger,
	}
}

// GetProfile reads the player and the score history concurrently.
func (s *ProfileService) GetProfile(ctx context.Context, playerID string) (profile PlayerProfile, err error) {
	playerID = strings.TrimSpace(playerID)
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.GetProfile", attribute.String("player_id", playerID))
	defer func() { endSpan(span, err) }()

	if playerID == "" {
		return PlayerProfile{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	var (
		item   player.Player
		exists bool
		scores []gameweekscore.Score
	)
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		item, exists, err = s.players.GetByID(ctx, playerID)
		if err != nil {
			return fmt.Errorf("get player by id: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		scores, err = s.scores.ListByPlayer(ctx, playerID)
		if err != nil {
			return fmt.Errorf("list scores by player: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		s.logger.WarnContext(ctx, "load player profile failed", "player_id", playerID, "error", err)
		return PlayerProfile{}, fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
	}
	if !exists {
		return PlayerProfile{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}

	gameweekscore.SortRecentFirst(scores)
	return PlayerProfile{
		Player:         item,
		Scores:         scores,
		Form:           gameweekscore.Form(scores),
		PointsPerMatch: gameweekscore.PointsPerMatch(scores),
		TotalBonus:     gameweekscore.TotalBonus(scores),
	}, nil
}

// RosterForm computes form for every roster entry on a bounded worker pool.
// Results follow the order of entries.
func (s *ProfileService) RosterForm(ctx context.Context, entries []roster.Entry) (out []PlayerForm, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.RosterForm", attribute.Int("entries", len(entries)))
	defer func() { endSpan(span, err) }()

	if len(entries) == 0 {
		return []PlayerForm{}, nil
	}

	workers := s.workers
	if workers > len(entries) {
		workers = len(entries)
	}
	workerPool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	out = make([]PlayerForm, len(entries))
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for i, entry := range entries {
		wg.Add(1)
		if err := workerPool.Submit(func() {
			defer wg.Done()

			scores, err := s.scores.ListByPlayer(ctx, entry.PlayerID)
			if err != nil {
				errOnce.Do(func() {
					firstErr = fmt.Errorf("list scores for player %s: %w", entry.PlayerID, err)
				})
				return
			}
			gameweekscore.SortRecentFirst(scores)
			out[i] = PlayerForm{
				EntryID:        entry.ID,
				PlayerID:       entry.PlayerID,
				PlayerName:     entry.Player.Name,
				Position:       entry.Position,
				IsStarter:      entry.IsStarter,
				Form:           gameweekscore.Form(scores),
				PointsPerMatch: gameweekscore.PointsPerMatch(scores),
				TotalBonus:     gameweekscore.TotalBonus(scores),
			}
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit form task to worker pool: %w", err)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrDependencyUnavailable, firstErr)
	}
	return out, nil
}
