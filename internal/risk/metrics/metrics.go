package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the risk module.
type Metrics struct {
	// Distribution of computed risk scores
	ScoreDistribution prometheus.Histogram

	// Tier outcomes per recompute
	TierOutcome *prometheus.CounterVec

	// Individual rule trigger counts
	RuleTriggered *prometheus.CounterVec
}

// New creates a Metrics instance with all risk module metrics registered.
func New() *Metrics {
	return &Metrics{
		ScoreDistribution: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vendorwatch_risk_score",
			Help:    "Distribution of computed vendor risk scores",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),

		TierOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vendorwatch_risk_tier_outcomes_total",
			Help: "Total risk tier outcomes per recompute",
		}, []string{"tier"}),

		RuleTriggered: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vendorwatch_risk_rule_triggers_total",
			Help: "Total times each scoring rule fired",
		}, []string{"rule"}),
	}
}

// ObserveAssessment records the outcome of one rule engine pass.
func (m *Metrics) ObserveAssessment(score int, tier string, triggered []string) {
	if m == nil {
		return
	}
	m.ScoreDistribution.Observe(float64(score))
	m.TierOutcome.WithLabelValues(tier).Inc()
	for _, rule := range triggered {
		m.RuleTriggered.WithLabelValues(rule).Inc()
	}
}
