// Package mca is a synthetic stand-in for the corporate-affairs registry
// that resolves the director network behind a GSTIN.
package mca

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"vendorwatch/internal/enrichment/models"
	"vendorwatch/pkg/domain"
)

const providerID = "mca-sandbox"

var complianceStatuses = []string{"Compliant", "Minor Defaults", "Major Defaults"}

// Provider fabricates network snapshots. Safe for concurrent use.
type Provider struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	clock func() time.Time
}

// Option configures the provider.
type Option func(*Provider)

// WithRand fixes the random source, making snapshots reproducible.
func WithRand(rnd *rand.Rand) Option {
	return func(p *Provider) { p.rnd = rnd }
}

// WithClock fixes the time source for tests.
func WithClock(clock func() time.Time) Option {
	return func(p *Provider) { p.clock = clock }
}

// New creates a synthetic MCA provider.
func New(opts ...Option) *Provider {
	p := &Provider{
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) ID() string { return providerID }

func (p *Provider) Health(_ context.Context) error { return nil }

// FetchNetwork fabricates the director's entity network: 1 to 45 linked
// entities, a subset active, up to half dissolved.
func (p *Provider) FetchNetwork(_ context.Context, gstin domain.GSTIN) (*models.NetworkSnapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock()
	total := p.between(1, 45)

	return &models.NetworkSnapshot{
		PAN:                  gstin.PAN(),
		DirectorName:         fmt.Sprintf("Director %d", p.between(1, 100)),
		DIN:                  fmt.Sprintf("0%07d", p.between(1000000, 9999999)),
		TotalEntities:        total,
		ActiveEntities:       p.between(1, total),
		DissolvedEntities:    p.rnd.Intn(total/2 + 1),
		RecentIncorporations: p.rnd.Intn(6),
		FlaggedEntities:      p.rnd.Intn(4),
		ComplianceStatus:     complianceStatuses[p.rnd.Intn(len(complianceStatuses))],
		DirectorSince:        now.AddDate(0, 0, -p.between(365, 3650)),
		CheckedAt:            now,
	}, nil
}

func (p *Provider) between(lo, hi int) int {
	return lo + p.rnd.Intn(hi-lo+1)
}
