package risk

import (
	"fmt"

	"github.com/shopspring/decimal"

	"vendorwatch/internal/vendor"
)

// Breach thresholds. Independent of the scoring rules: these flag direct
// statutory-limit violations for audit narratives, not risk heuristics.
var (
	breachITCNonFilerFloor  = decimal.NewFromInt(100000)
	breachITCNewVendorFloor = decimal.NewFromInt(500000)
)

// DetectBreaches flags statutory-limit violations on a vendor record.
// Each condition is evaluated independently; zero, one, or many breaches
// may be returned. Runs on demand and carries no score weight.
func DetectBreaches(v vendor.Vendor) []string {
	breaches := make([]string, 0, 4)

	if v.CashPayments.GreaterThan(cashPaymentLimit) {
		breaches = append(breaches, fmt.Sprintf(
			"Section 40A(3) Breach: Cash payments of ₹%s exceed ₹10,000 limit per transaction",
			FormatAmount(v.CashPayments)))
	}

	if v.MonthsNotFiled > 2 {
		breaches = append(breaches, fmt.Sprintf(
			"GSTR-3B Filing Breach: %d consecutive months of non-filing",
			v.MonthsNotFiled))
	}

	if v.GSTR1Status == vendor.GSTR1NotFiled && v.ITCAmount.GreaterThan(breachITCNonFilerFloor) {
		breaches = append(breaches, fmt.Sprintf(
			"GSTR-1 Not Filed: ITC of ₹%s claimed from non-compliant vendor",
			FormatAmount(v.ITCAmount)))
	}

	if v.RegistrationAgeDays < 30 && v.ITCAmount.GreaterThan(breachITCNewVendorFloor) {
		breaches = append(breaches, fmt.Sprintf(
			"High Risk Transaction: ₹%s ITC from vendor registered only %d days ago",
			FormatAmount(v.ITCAmount), v.RegistrationAgeDays))
	}

	return breaches
}
