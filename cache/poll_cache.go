package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"polls-backend/models"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss signals that a key is not present in the cache.
var ErrCacheMiss = errors.New("cache miss")

// Poll cache entries expire on their own; invalidation on writes only
// covers the common path.
const pollCacheTTL = 10 * time.Minute

// PollCache is a read-through cache for poll-by-id lookups.
type PollCache struct {
	client *redis.Client
}

// NewPollCache creates a poll cache backed by the given Redis client.
func NewPollCache(client *redis.Client) *PollCache {
	return &PollCache{client: client}
}

func pollKey(id uint) string {
	return fmt.Sprintf("poll:%d", id)
}

// GetPoll fetches a cached poll. Returns ErrCacheMiss when absent.
func (c *PollCache) GetPoll(ctx context.Context, id uint) (*models.Poll, error) {
	data, err := c.client.Get(ctx, pollKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var poll models.Poll
	if err := json.Unmarshal(data, &poll); err != nil {
		// Corrupt entry; drop it so the next read repopulates.
		_ = c.client.Del(ctx, pollKey(id)).Err()
		return nil, ErrCacheMiss
	}
	return &poll, nil
}

// SetPoll stores a poll with the default TTL.
func (c *PollCache) SetPoll(ctx context.Context, poll *models.Poll) error {
	data, err := json.Marshal(poll)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, pollKey(poll.ID), data, pollCacheTTL).Err()
}

// DeletePoll removes a poll entry, for invalidation on update/delete.
func (c *PollCache) DeletePoll(ctx context.Context, id uint) error {
	return c.client.Del(ctx, pollKey(id)).Err()
}
