package app

import (
	"context"
	"fmt"
	"time"

	"hire-rank/internal/config"
	"hire-rank/internal/database"
	"hire-rank/internal/database/migration"
	dbpostgres "hire-rank/internal/database/postgres"
	"hire-rank/internal/domain/matching"
	"hire-rank/internal/infrastructure/cache"
	"hire-rank/internal/repository"
	"hire-rank/internal/repository/memory"
	"hire-rank/internal/usecase"
	"hire-rank/migrations"

	"go.uber.org/zap"
)

type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis

	Repos    usecase.Repositories
	Matches  *usecase.MatchResults
	Rankings *usecase.Rankings
}

// NewContainer wires storage and usecases. Without DB_HOST the container
// falls back to the in-memory store.
func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Container{Config: cfg, Logger: logger}

	if cfg.Database.DBHost == "" {
		logger.Warn("DB_HOST not set, using in-memory store")
		c.Repos = MemoryRepositories(memory.NewStore())
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		c.DB = db

		if cfg.Database.AutoMigrate {
			if err := migrate(ctx, cfg.Database, db, logger); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		c.Repos = PostgresRepositories(db)
	}

	var uc usecase.Cache
	if cfg.Redis.Enabled {
		c.Cache = cache.NewRedis(cfg.Redis, logger)
		uc = c.Cache
	}

	c.Matches = usecase.NewMatchResultUsecase(c.Repos, signalProvider(cfg.Ranking.Signals), cfg.Ranking.BatchWorkers, logger)
	c.Rankings = usecase.NewRankingUsecase(c.Repos, uc, usecase.RankingOptions{
		DefaultWeights:  cfg.Ranking.DefaultWeights,
		CriteriaVersion: cfg.Ranking.CriteriaVersion,
		CacheTTL:        cfg.Redis.TTL,
	}, logger)

	return c, nil
}

func PostgresRepositories(db database.DB) usecase.Repositories {
	return usecase.Repositories{
		Jobs:       repository.NewPostgresJobRepository(db),
		Candidates: repository.NewPostgresCandidateRepository(db),
		Matches:    repository.NewPostgresMatchResultRepository(db),
		Rankings:   repository.NewPostgresRankingRepository(db),
	}
}

func MemoryRepositories(s *memory.Store) usecase.Repositories {
	return usecase.Repositories{
		Jobs:       s.Jobs(),
		Candidates: s.Candidates(),
		Matches:    s.Matches(),
		Rankings:   s.Rankings(),
	}
}

func signalProvider(name string) matching.SignalProvider {
	if name == "none" {
		return matching.NoSignals{}
	}
	return matching.HashSignals{}
}

// migrate applies the embedded migrations unless a directory is configured.
func migrate(ctx context.Context, cfg config.DatabaseConfig, db database.DB, logger *zap.Logger) error {
	r := migration.Runner{FS: migrations.FS, Logger: logger.Named("migration")}
	if cfg.MigrationsDir != "" {
		r = migration.Runner{Dir: cfg.MigrationsDir, Logger: logger.Named("migration")}
	}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
