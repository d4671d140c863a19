package state

import (
	"context"
	"encoding/json"
	"fmt"

	"bitmapindex/indexer/internal/domain"

	"github.com/redis/go-redis/v9"
)

// StateManager publishes the result of an indexing run for other consumers.
type StateManager interface {
	GetLastRun(ctx context.Context) (string, error)
	SaveDump(ctx context.Context, dump *domain.Dump) error
}

type redisStateManager struct {
	redisClient *redis.Client
	keyPrefix   string
}

func NewRedisStateManager(redisClient *redis.Client, keyPrefix string) StateManager {
	return &redisStateManager{
		redisClient: redisClient,
		keyPrefix:   keyPrefix,
	}
}

func (s *redisStateManager) dumpKey() string {
	return s.keyPrefix + "dump"
}

func (s *redisStateManager) lastRunKey() string {
	return s.keyPrefix + "last_run"
}

// GetLastRun returns the timestamp of the previously published dump, or "" if none.
func (s *redisStateManager) GetLastRun(ctx context.Context) (string, error) {
	val, err := s.redisClient.Get(ctx, s.lastRunKey()).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // Nothing published yet
		}
		return "", fmt.Errorf("failed to get last run: %w", err)
	}
	return val, nil
}

// SaveDump stores the dump JSON and its timestamp in one transaction.
func (s *redisStateManager) SaveDump(ctx context.Context, dump *domain.Dump) error {
	data, err := json.Marshal(dump)
	if err != nil {
		return fmt.Errorf("failed to serialize dump: %w", err)
	}

	_, err = s.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.dumpKey(), data, 0) // No expiration
		pipe.Set(ctx, s.lastRunKey(), dump.Timestamp, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save dump: %w", err)
	}
	return nil
}
