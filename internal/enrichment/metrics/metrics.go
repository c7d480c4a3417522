package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the enrichment module.
type Metrics struct {
	// Lookup latencies by provider
	LookupLatency *prometheus.HistogramVec

	// Cache hits and misses
	CacheOutcome *prometheus.CounterVec

	// Provider failures by category
	ProviderFailure *prometheus.CounterVec
}

// New creates a Metrics instance with all enrichment metrics registered.
func New() *Metrics {
	return &Metrics{
		LookupLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vendorwatch_enrichment_lookup_duration_seconds",
			Help:    "Duration of registry lookups by provider",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"provider"}),

		CacheOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vendorwatch_enrichment_cache_outcomes_total",
			Help: "Enrichment cache hits and misses",
		}, []string{"outcome"}), // outcome: "hit", "miss"

		ProviderFailure: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vendorwatch_enrichment_provider_failures_total",
			Help: "Provider failures by provider and error category",
		}, []string{"provider", "category"}),
	}
}

// ObserveLookup records the duration of one provider call.
func (m *Metrics) ObserveLookup(provider string, d time.Duration) {
	if m != nil {
		m.LookupLatency.WithLabelValues(provider).Observe(d.Seconds())
	}
}

// IncrementCache records a cache hit or miss.
func (m *Metrics) IncrementCache(outcome string) {
	if m != nil {
		m.CacheOutcome.WithLabelValues(outcome).Inc()
	}
}

// IncrementFailure records a provider failure.
func (m *Metrics) IncrementFailure(provider, category string) {
	if m != nil {
		m.ProviderFailure.WithLabelValues(provider, category).Inc()
	}
}
