package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultProgressTTL = 15 * time.Minute

// Config holds Redis connection settings.
type Config struct {
	Addr     string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"       envDefault:"0"`
}

// NewClient creates a Redis client and verifies connectivity.
func NewClient(cfg *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// ProgressStore keeps render progress percentages in Redis. Progress is
// ephemeral polling state with a TTL; the job row in Postgres remains
// the state of record.
type ProgressStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProgressStore creates a Redis-backed progress store.
func NewProgressStore(client *redis.Client) *ProgressStore {
	return &ProgressStore{
		client: client,
		ttl:    defaultProgressTTL,
	}
}

// Set records the progress percentage for a job.
func (p *ProgressStore) Set(ctx context.Context, jobID string, percent int) error {
	if err := p.client.Set(ctx, progressKey(jobID), percent, p.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set progress: %w", err)
	}
	return nil
}

// Get returns the progress percentage for a job, and whether any
// progress has been recorded.
func (p *ProgressStore) Get(ctx context.Context, jobID string) (int, bool, error) {
	percent, err := p.client.Get(ctx, progressKey(jobID)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get progress: %w", err)
	}

	return percent, true, nil
}

// progressKey builds the Redis key for a job's progress counter.
func progressKey(jobID string) string {
	return "render:progress:" + jobID
}
