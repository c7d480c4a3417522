// Package enrichment resolves the external signals for a GSTIN: the GSTN
// registration snapshot and the MCA director-network snapshot. Lookups
// are cached; both providers are queried in parallel on a miss.
package enrichment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"vendorwatch/internal/enrichment/cache"
	"vendorwatch/internal/enrichment/metrics"
	"vendorwatch/internal/enrichment/models"
	"vendorwatch/internal/enrichment/providers"
	"vendorwatch/pkg/domain"
	dErrors "vendorwatch/pkg/domain-errors"
	"vendorwatch/pkg/platform/sentinel"
)

// Service orchestrates providers and the cache.
type Service struct {
	registry providers.RegistryProvider
	network  providers.NetworkProvider
	cache    cache.Store
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// Option configures the service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithCache installs a snapshot cache. Without one every lookup goes to
// the providers.
func WithCache(c cache.Store) Option {
	return func(s *Service) { s.cache = c }
}

// New constructs the enrichment service.
func New(registry providers.RegistryProvider, network providers.NetworkProvider, opts ...Option) (*Service, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry provider is required")
	}
	if network == nil {
		return nil, fmt.Errorf("network provider is required")
	}
	svc := &Service{registry: registry, network: network}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Lookup returns the enrichment profile for a GSTIN, from cache when
// fresh, otherwise from both providers queried in parallel.
//
// Errors: CodeUnavailable when either provider fails; the caller decides
// whether to retry on a later batch. A cache write failure is logged and
// swallowed - the profile is still good.
func (s *Service) Lookup(ctx context.Context, gstin domain.GSTIN) (*models.Profile, error) {
	if s.cache != nil {
		cached, err := s.cache.Find(ctx, gstin)
		switch {
		case err == nil:
			s.metrics.IncrementCache("hit")
			return cached, nil
		case dErrors.Is(err, sentinel.ErrNotFound):
			s.metrics.IncrementCache("miss")
		default:
			// A broken cache must not block enrichment.
			s.log(ctx, slog.LevelWarn, "enrichment cache read failed", "gstin", gstin, "error", err)
		}
	}

	var (
		registrySnap *models.RegistrySnapshot
		networkSnap  *models.NetworkSnapshot
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		snap, err := s.registry.FetchRegistration(gctx, gstin)
		s.metrics.ObserveLookup(s.registry.ID(), time.Since(start))
		if err != nil {
			s.metrics.IncrementFailure(s.registry.ID(), string(providers.Category(err)))
			return err
		}
		registrySnap = snap
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		snap, err := s.network.FetchNetwork(gctx, gstin)
		s.metrics.ObserveLookup(s.network.ID(), time.Since(start))
		if err != nil {
			s.metrics.IncrementFailure(s.network.ID(), string(providers.Category(err)))
			return err
		}
		networkSnap = snap
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "registry enrichment failed")
	}

	profile := &models.Profile{Registry: *registrySnap, Network: *networkSnap}

	if s.cache != nil {
		if err := s.cache.Save(ctx, gstin, profile); err != nil {
			s.log(ctx, slog.LevelWarn, "enrichment cache write failed", "gstin", gstin, "error", err)
		}
	}
	return profile, nil
}

// Health reports the first failing provider, if any.
func (s *Service) Health(ctx context.Context) error {
	if err := s.registry.Health(ctx); err != nil {
		return fmt.Errorf("registry provider %s: %w", s.registry.ID(), err)
	}
	if err := s.network.Health(ctx); err != nil {
		return fmt.Errorf("network provider %s: %w", s.network.ID(), err)
	}
	return nil
}

func (s *Service) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if s.logger != nil {
		s.logger.Log(ctx, level, msg, args...)
	}
}
