// Package risk contains the vendor risk rule engine, the score classifier
// and the compliance breach detector. Everything here is pure domain
// logic - no I/O, no side effects, no randomness - so outcomes are
// deterministic for a given vendor record.
package risk

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"vendorwatch/internal/vendor"
)

// Statutory and heuristic thresholds used by the rules below. Monetary
// values are in rupees.
var (
	cashPaymentLimit      = decimal.NewFromInt(50000)
	itcConcentrationFloor = decimal.NewFromInt(500000)
	highExposureFloor     = decimal.NewFromInt(2000000)
)

// Assessment is the full output of a rule engine pass.
type Assessment struct {
	Score   int
	Factors []string
	// Triggered lists the names of the rules that fired, in evaluation
	// order. Used for metrics, never for display.
	Triggered []string
}

// rule couples a stable name with an evaluation function. A rule fires
// when it returns a positive point contribution; a firing rule
// contributes exactly one factor string.
type rule struct {
	name string
	eval func(v vendor.Vendor) (int, string)
}

// rules is evaluated in order, so factor ordering is stable across runs
// with identical inputs. Groups are independent and may fire together;
// tiers within a group are mutually exclusive.
var rules = []rule{
	{"registration_age", func(v vendor.Vendor) (int, string) {
		switch {
		case v.RegistrationAgeDays < 30:
			return 35, fmt.Sprintf("Recently registered (%d days old) - High risk of fraudulent entity", v.RegistrationAgeDays)
		case v.RegistrationAgeDays < 90:
			return 25, fmt.Sprintf("New vendor (%d days old) - Requires enhanced due diligence", v.RegistrationAgeDays)
		case v.RegistrationAgeDays < 180:
			return 10, fmt.Sprintf("Relatively new vendor (%d days old)", v.RegistrationAgeDays)
		}
		return 0, ""
	}},
	{"premises_type", func(v vendor.Vendor) (int, string) {
		switch v.Premises {
		case vendor.PremisesRentedRoom, vendor.PremisesVirtualOffice:
			return 25, fmt.Sprintf("Operating from %s - Potential shell company indicator", v.Premises)
		case vendor.PremisesResidential:
			return 15, "Operating from residential address - Verify business legitimacy"
		}
		return 0, ""
	}},
	{"director_network", func(v vendor.Vendor) (int, string) {
		switch {
		case v.DirectorEntityCount > 30:
			return 20, fmt.Sprintf("Director associated with %d companies - Shell company network risk", v.DirectorEntityCount)
		case v.DirectorEntityCount > 15:
			return 10, fmt.Sprintf("Director associated with %d companies - Monitor for suspicious activity", v.DirectorEntityCount)
		}
		return 0, ""
	}},
	{"gstr1_status", func(v vendor.Vendor) (int, string) {
		switch v.GSTR1Status {
		case vendor.GSTR1NilReturn:
			return 15, "Filed NIL GSTR-1 returns - No outward supplies reported despite taking ITC"
		case vendor.GSTR1NotFiled:
			return 20, "GSTR-1 not filed - Non-compliant vendor"
		}
		return 0, ""
	}},
	{"unfiled_months", func(v vendor.Vendor) (int, string) {
		switch {
		case v.MonthsNotFiled > 3:
			return 30, fmt.Sprintf("GSTR-3B not filed for %d months - Registration cancellation imminent", v.MonthsNotFiled)
		case v.MonthsNotFiled > 0:
			return 15 + v.MonthsNotFiled*3, fmt.Sprintf("GSTR-3B not filed for %d months - ITC reversal risk", v.MonthsNotFiled)
		}
		return 0, ""
	}},
	{"cash_limit", func(v vendor.Vendor) (int, string) {
		if v.CashPayments.GreaterThan(cashPaymentLimit) {
			return 15, fmt.Sprintf("Cash payments of ₹%s exceed Section 40A(3) limit of ₹10,000", FormatAmount(v.CashPayments))
		}
		return 0, ""
	}},
	{"itc_concentration", func(v vendor.Vendor) (int, string) {
		if v.TransactionCount < 10 && v.ITCAmount.GreaterThan(itcConcentrationFloor) {
			return 15, fmt.Sprintf("High ITC (₹%s) with low transaction count (%d) - Unusual pattern", FormatAmount(v.ITCAmount), v.TransactionCount)
		}
		return 0, ""
	}},
	{"new_vendor_exposure", func(v vendor.Vendor) (int, string) {
		if v.ITCAmount.GreaterThan(highExposureFloor) && v.RegistrationAgeDays < 180 {
			return 10, fmt.Sprintf("New vendor with high ITC exposure (₹%s) - Enhanced monitoring required", FormatAmount(v.ITCAmount))
		}
		return 0, ""
	}},
	{"compound_signal", func(v vendor.Vendor) (int, string) {
		if v.RegistrationAgeDays < 15 && v.DirectorEntityCount > 20 {
			return 15, "CRITICAL: Very new registration + director network = High fraud probability"
		}
		return 0, ""
	}},
}

// Score evaluates every rule group against the vendor and returns the
// capped score and the ordered factor list. Contributions sum before the
// 100 cap is applied; the cap is a ceiling on the final score only and
// never truncates factor text.
func Score(v vendor.Vendor) (int, []string) {
	a := Assess(v)
	return a.Score, a.Factors
}

// Assess is Score plus the names of the rules that fired, for callers
// that record per-rule metrics.
func Assess(v vendor.Vendor) Assessment {
	score := 0
	factors := make([]string, 0, len(rules))
	triggered := make([]string, 0, len(rules))
	for _, r := range rules {
		pts, factor := r.eval(v)
		if pts <= 0 {
			continue
		}
		score += pts
		factors = append(factors, factor)
		triggered = append(triggered, r.name)
	}
	if score > 100 {
		score = 100
	}
	return Assessment{Score: score, Factors: factors, Triggered: triggered}
}

// FormatAmount renders a rupee amount with thousands separators for
// audit-facing factor and breach text. Fractional paise are kept only
// when present.
func FormatAmount(d decimal.Decimal) string {
	s := d.String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	out := b.String()
	if hasFrac {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}
