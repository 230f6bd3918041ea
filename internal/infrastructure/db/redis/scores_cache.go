package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alvearium/accounts-api/internal/core/domain"
)

const (
	scoresKey = "leaderboard:top"
	scoresTTL = 30 * time.Second
)

// ScoresCache is a short-lived read-through cache for the leaderboard,
// backed by a single JSON value in Redis.
type ScoresCache struct {
	client *redis.Client
}

// NewScoresCache creates a ScoresCache wrapping the given Redis client.
func NewScoresCache(client *redis.Client) *ScoresCache {
	return &ScoresCache{client: client}
}

// Get returns the cached leaderboard. The bool reports whether the key was
// present; an expired or absent key is a miss, not an error.
func (c *ScoresCache) Get(ctx context.Context) ([]domain.ScoreEntry, bool, error) {
	raw, err := c.client.Get(ctx, scoresKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("scores cache get: %w", err)
	}

	var entries []domain.ScoreEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false, fmt.Errorf("scores cache decode: %w", err)
	}
	return entries, true, nil
}

// Set stores the leaderboard snapshot (expires after scoresTTL).
func (c *ScoresCache) Set(ctx context.Context, entries []domain.ScoreEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("scores cache encode: %w", err)
	}
	return c.client.Set(ctx, scoresKey, raw, scoresTTL).Err()
}
