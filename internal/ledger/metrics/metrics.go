package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the ledger module.
type Metrics struct {
	// Batches consolidated, by outcome (ok, rejected)
	Batches *prometheus.CounterVec

	// Vendor mutations, by kind (created, updated, skipped)
	VendorMutations *prometheus.CounterVec

	// Rows per accepted batch
	BatchRows prometheus.Histogram

	// End-to-end consolidation latency
	ConsolidateDuration prometheus.Histogram
}

// New creates a Metrics instance with all ledger module metrics registered.
func New() *Metrics {
	return &Metrics{
		Batches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vendorwatch_ledger_batches_total",
			Help: "Total transaction batches submitted for consolidation",
		}, []string{"outcome"}),

		VendorMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vendorwatch_ledger_vendor_mutations_total",
			Help: "Total vendor ledger mutations by kind",
		}, []string{"kind"}),

		BatchRows: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vendorwatch_ledger_batch_rows",
			Help:    "Aggregated vendor rows per accepted batch",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),

		ConsolidateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vendorwatch_ledger_consolidate_duration_seconds",
			Help:    "Time spent consolidating one batch",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveBatch records one consolidation outcome.
func (m *Metrics) ObserveBatch(outcome string, rows int, d time.Duration) {
	if m == nil {
		return
	}
	m.Batches.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		m.BatchRows.Observe(float64(rows))
		m.ConsolidateDuration.Observe(d.Seconds())
	}
}

// IncrementMutation counts a created, updated or skipped vendor row.
func (m *Metrics) IncrementMutation(kind string) {
	if m != nil {
		m.VendorMutations.WithLabelValues(kind).Inc()
	}
}
