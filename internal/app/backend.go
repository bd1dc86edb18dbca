package app

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/config"
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	"github.com/riskibarqy/fantasy-roster/internal/infrastructure/backend/rest"
	cacherepo "github.com/riskibarqy/fantasy-roster/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-roster/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-roster/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-roster/internal/platform/cache"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
	"github.com/riskibarqy/fantasy-roster/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-roster/internal/usecase"
)

const redisPingTimeout = 3 * time.Second

// wiring collects what the builders hand back besides the backend itself.
type wiring struct {
	closers  []func() error
	breakers []*resilience.CircuitBreaker
}

func (w *wiring) addBreaker(b *resilience.CircuitBreaker) {
	if b != nil {
		w.breakers = append(w.breakers, b)
	}
}

func buildBackend(ctx context.Context, cfg config.Config, logger *logging.Logger, w *wiring) (usecase.Backend, error) {
	switch cfg.BackendDriver {
	case config.BackendMemory:
		logger.Warn("using in-memory backend with seed data")
		players := memory.NewPlayerRepository(memory.SeedPlayers(), memory.SeedClubs())
		return usecase.Backend{
			Teams:   memory.NewFantasyTeamRepository(memory.SeedFantasyTeams()),
			Rosters: memory.NewRosterRepository(memory.SeedRosterEntries(), players),
			Players: players,
			Scores:  memory.NewScoreRepository(memory.SeedScores()),
		}, nil

	case config.BackendPostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return usecase.Backend{}, err
		}
		w.closers = append(w.closers, db.Close)
		logger.Info("postgres backend connected", "db_name", config.DatabaseName(cfg.DBURL))
		return usecase.Backend{
			Teams:   postgres.NewFantasyTeamRepository(db),
			Rosters: postgres.NewRosterRepository(db),
			Players: postgres.NewPlayerRepository(db),
			Scores:  postgres.NewScoreRepository(db),
		}, nil

	case config.BackendREST:
		client, err := rest.NewClient(rest.Config{
			BaseURL:        cfg.BackendRESTURL,
			APIKey:         cfg.BackendRESTAPIKey,
			Timeout:        cfg.BackendRESTTimeout,
			MaxRetries:     cfg.BackendRESTMaxRetries,
			RetryBackoff:   cfg.BackendRESTRetryBackoff,
			CircuitBreaker: cfg.BackendCircuit,
			Logger:         logger,
		})
		if err != nil {
			return usecase.Backend{}, fmt.Errorf("build rest backend: %w", err)
		}
		w.addBreaker(client.Breaker())
		logger.Info("rest backend configured", "base_url", cfg.BackendRESTURL)
		return usecase.Backend{
			Teams:   rest.NewFantasyTeamRepository(client),
			Rosters: rest.NewRosterRepository(client),
			Players: rest.NewPlayerRepository(client),
			Scores:  rest.NewScoreRepository(client),
		}, nil

	default:
		return usecase.Backend{}, fmt.Errorf("unsupported backend driver %q", cfg.BackendDriver)
	}
}

// wrapPlayerCache puts the all-players read behind the configured cache.
func wrapPlayerCache(ctx context.Context, cfg config.Config, players player.Repository, logger *logging.Logger, w *wiring) (player.Repository, error) {
	switch cfg.CacheDriver {
	case config.CacheNone:
		return players, nil

	case config.CacheMemory:
		loader := cache.NewJSONLoader(cache.NewStore(cfg.CacheTTL), logger)
		return cacherepo.NewPlayerRepository(players, loader), nil

	case config.CacheRedis:
		client := cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		w.closers = append(w.closers, client.Close)

		store := cache.NewRedisStore(client, cfg.ServiceName+":", cfg.CacheTTL)
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("redis player cache enabled", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		return cacherepo.NewPlayerRepository(players, cache.NewJSONLoader(store, logger)), nil

	default:
		return nil, fmt.Errorf("unsupported cache driver %q", cfg.CacheDriver)
	}
}
