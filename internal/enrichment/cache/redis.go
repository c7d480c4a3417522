package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vendorwatch/internal/enrichment/models"
	"vendorwatch/pkg/domain"
	"vendorwatch/pkg/platform/sentinel"
)

// Redis caches profiles in a shared Redis so multiple instances reuse
// each other's registry lookups. Expiry is delegated to Redis TTLs.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed cache with the given TTL.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func profileKey(gstin domain.GSTIN) string {
	return "vendorwatch:enrichment:" + gstin.String()
}

func (c *Redis) Find(ctx context.Context, gstin domain.GSTIN) (*models.Profile, error) {
	raw, err := c.client.Get(ctx, profileKey(gstin)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var profile models.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("decode cached profile: %w", err)
	}
	return &profile, nil
}

func (c *Redis) Save(ctx context.Context, gstin domain.GSTIN, profile *models.Profile) error {
	if profile == nil {
		return nil
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := c.client.Set(ctx, profileKey(gstin), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
