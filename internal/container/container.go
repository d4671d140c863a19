package container

import (
	"context"
	"fmt"
	"time"

	"bitmapindex/indexer/internal/config"
	"bitmapindex/indexer/internal/repository"
	"bitmapindex/indexer/internal/service"
	"bitmapindex/indexer/internal/source"
	"bitmapindex/indexer/internal/state"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config       *config.Config
	Source       source.Lister
	Repository   repository.DisplayRepository
	StateManager state.StateManager

	Service *service.Service

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized. Postgres and
// Redis are only contacted when enabled in the configuration.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
		Source: NewSource(cfg.Source),
	}

	if cfg.Database.Enabled {
		db, err := pgxpool.New(ctx,
			fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
				cfg.Database.Host,
				cfg.Database.Port,
				cfg.Database.User,
				cfg.Database.Password,
				cfg.Database.Name,
			))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		container.db = db
		container.Repository = repository.NewDisplayRepository(db)
		log.Info("✅ Database repository enabled")
	}

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
		container.redis = rdb

		// Test connection
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		container.StateManager = state.NewRedisStateManager(rdb, cfg.Redis.KeyPrefix)
	}

	container.Service = service.NewService(
		container.Source,
		cfg.Source.Extensions,
		cfg.Output,
		container.Repository,
		container.StateManager,
	)

	return container, nil
}

// NewSource picks the HTTP index when a URL is configured, the local folder otherwise.
func NewSource(cfg config.SourceConfig) source.Lister {
	if cfg.URL != "" {
		return source.NewHTTPSource(cfg.URL, time.Duration(cfg.Timeout)*time.Second, cfg.MaxRetries)
	}
	return source.NewDirSource(cfg.Dir)
}

// Run executes one indexing pass
func (c *Container) Run(ctx context.Context) (*service.Result, error) {
	return c.Service.Run(ctx)
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}
