// Package cache stores enrichment profiles keyed by GSTIN so repeated
// lookups within the TTL don't hit the registries again.
package cache

import (
	"context"
	"sync"
	"time"

	"vendorwatch/internal/enrichment/models"
	"vendorwatch/pkg/domain"
	"vendorwatch/pkg/platform/sentinel"
)

// Store is the cache contract the enrichment service depends on.
type Store interface {
	// Find returns a cached profile, or sentinel.ErrNotFound when the
	// GSTIN is absent or its entry has expired.
	Find(ctx context.Context, gstin domain.GSTIN) (*models.Profile, error)

	// Save stores a profile. A nil profile is a no-op.
	Save(ctx context.Context, gstin domain.GSTIN, profile *models.Profile) error
}

type cachedProfile struct {
	profile  models.Profile
	storedAt time.Time
}

// InMemory caches profiles with TTL expiration.
type InMemory struct {
	mu       sync.RWMutex
	profiles map[domain.GSTIN]cachedProfile
	ttl      time.Duration
}

// NewInMemory creates an in-memory cache with the given TTL.
func NewInMemory(ttl time.Duration) *InMemory {
	return &InMemory{
		profiles: make(map[domain.GSTIN]cachedProfile),
		ttl:      ttl,
	}
}

func (c *InMemory) Find(_ context.Context, gstin domain.GSTIN) (*models.Profile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if cached, ok := c.profiles[gstin]; ok {
		if time.Since(cached.storedAt) < c.ttl {
			profile := cached.profile
			return &profile, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (c *InMemory) Save(_ context.Context, gstin domain.GSTIN, profile *models.Profile) error {
	if profile == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profiles[gstin] = cachedProfile{profile: *profile, storedAt: time.Now()}
	return nil
}
