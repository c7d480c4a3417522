package risk

import (
	"github.com/shopspring/decimal"

	"vendorwatch/internal/vendor"
)

// Exposure sums the ITC amounts of vendors at or above the given tier and
// returns the total alongside the vendor count. TierCritical narrows to
// critical vendors only; TierHigh includes critical; any other tier
// includes medium and above.
func Exposure(vendors []vendor.Vendor, minTier vendor.RiskTier) (decimal.Decimal, int) {
	var included map[vendor.RiskTier]bool
	switch minTier {
	case vendor.TierCritical:
		included = map[vendor.RiskTier]bool{vendor.TierCritical: true}
	case vendor.TierHigh:
		included = map[vendor.RiskTier]bool{vendor.TierCritical: true, vendor.TierHigh: true}
	default:
		included = map[vendor.RiskTier]bool{vendor.TierCritical: true, vendor.TierHigh: true, vendor.TierMedium: true}
	}

	total := decimal.Zero
	count := 0
	for _, v := range vendors {
		if included[v.RiskTier] {
			total = total.Add(v.ITCAmount)
			count++
		}
	}
	return total, count
}
