package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const displayNameKeyPrefix = "user:display_name:"

// NameCache keeps user display names in Redis so posting a chat message does
// not cost a users lookup every time.
type NameCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewNameCache(client *redis.Client, ttl time.Duration) *NameCache {
	return &NameCache{client: client, ttl: ttl}
}

// Get returns "" with a nil error on a miss.
func (c *NameCache) Get(ctx context.Context, userID uuid.UUID) (string, error) {
	name, err := c.client.Get(ctx, displayNameKeyPrefix+userID.String()).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

func (c *NameCache) Set(ctx context.Context, userID uuid.UUID, name string) error {
	return c.client.Set(ctx, displayNameKeyPrefix+userID.String(), name, c.ttl).Err()
}
