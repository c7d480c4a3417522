package risk

import "vendorwatch/internal/vendor"

// Classify maps a risk score to its tier. Total over all integers;
// boundaries are inclusive-lower. The input is always the rule engine's
// output, already bounded to [0,100], so there are no error conditions.
func Classify(score int) vendor.RiskTier {
	switch {
	case score >= 90:
		return vendor.TierCritical
	case score >= 70:
		return vendor.TierHigh
	case score >= 40:
		return vendor.TierMedium
	default:
		return vendor.TierLow
	}
}
