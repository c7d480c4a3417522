// Package gstn is a synthetic stand-in for the GSTN taxpayer registry.
// It fabricates plausible registration snapshots so the rest of the
// pipeline can be exercised without upstream access; a production
// deployment replaces it with a real API client implementing the same
// interface.
package gstn

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"vendorwatch/internal/enrichment/models"
	"vendorwatch/internal/synth"
	"vendorwatch/pkg/domain"
)

const providerID = "gstn-sandbox"

var statuses = []string{"Active", "Suspended", "Pending Verification"}

// Provider fabricates registry snapshots. Safe for concurrent use.
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

// New creates a synthetic GSTN provider.
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

// Health always succeeds; the sandbox has no upstream to lose.
func (p *Provider) Health(_ context.Context) error { return nil }

// FetchRegistration fabricates a snapshot: registration back-dated 5 to
// 1500 days, always Active once past 180 days, and last-filed markers
// drawn from the three most recent completed months or the literal
// "Not Filed".
func (p *Provider) FetchRegistration(_ context.Context, gstin domain.GSTIN) (*models.RegistrySnapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock()
	registrationDays := p.between(5, 1500)

	status := "Active"
	if registrationDays <= 180 {
		status = statuses[p.rnd.Intn(len(statuses))]
	}

	return &models.RegistrySnapshot{
		GSTIN:              gstin.String(),
		LegalName:          synth.VendorNames[p.rnd.Intn(len(synth.VendorNames))],
		TradeName:          synth.VendorNames[p.rnd.Intn(len(synth.VendorNames))],
		RegistrationDate:   now.AddDate(0, 0, -registrationDays),
		Status:             status,
		TaxpayerType:       "Regular",
		GSTR1LastFiled:     p.lastFiled(now),
		GSTR3BLastFiled:    p.lastFiled(now),
		CenterJurisdiction: "Mumbai",
		StateJurisdiction:  "Maharashtra",
		CheckedAt:          now,
	}, nil
}

// lastFiled picks one of the three most recent completed filing periods,
// or the not-filed marker.
func (p *Provider) lastFiled(now time.Time) string {
	switch p.rnd.Intn(4) {
	case 0:
		return models.NotFiledMarker
	case 1:
		return now.AddDate(0, -1, 0).Format("2006-01")
	case 2:
		return now.AddDate(0, -2, 0).Format("2006-01")
	default:
		return now.AddDate(0, -3, 0).Format("2006-01")
	}
}

func (p *Provider) between(lo, hi int) int {
	return lo + p.rnd.Intn(hi-lo+1)
}
