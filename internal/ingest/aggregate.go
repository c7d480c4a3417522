package ingest

import (
	"strings"

	"github.com/shopspring/decimal"

	"vendorwatch/pkg/domain"
)

// VendorSummary is one aggregated row per (gstin, vendor name) group.
// Summaries carry no risk information; deriving risk is strictly the
// ledger consolidator's responsibility.
type VendorSummary struct {
	GSTIN            domain.GSTIN
	VendorName       string
	TransactionCount int
	TotalAmount      decimal.Decimal
	ITCAmount        decimal.Decimal
	CashAmount       decimal.Decimal
}

// Aggregate validates the batch schema, then groups rows by
// (gstin, vendor name) and totals each group: row count, transaction
// amount, tax amount (reported as ITC) and the cash-settled subtotal.
// Groups appear in first-seen order so output is deterministic.
//
// Errors: CodeValidation when a mandatory column is absent; malformed
// numeric cells within a valid batch coerce to zero instead of aborting.
func Aggregate(b *Batch) ([]VendorSummary, error) {
	if err := b.ValidateSchema(); err != nil {
		return nil, err
	}

	hasTax := b.HasColumn(ColTaxAmount)
	hasMode := b.HasColumn(ColPaymentMode)

	type groupKey struct {
		gstin string
		name  string
	}
	index := make(map[groupKey]int)
	summaries := make([]VendorSummary, 0)

	for _, row := range b.Rows {
		key := groupKey{gstin: row[ColGSTIN], name: row[ColVendorName]}
		i, ok := index[key]
		if !ok {
			i = len(summaries)
			index[key] = i
			summaries = append(summaries, VendorSummary{
				// Registry keys are taken from the batch as-is; structural
				// GSTIN validation happens on API lookups, not imports.
				GSTIN:       domain.GSTIN(key.gstin),
				VendorName:  key.name,
				TotalAmount: decimal.Zero,
				ITCAmount:   decimal.Zero,
				CashAmount:  decimal.Zero,
			})
		}

		amount := parseAmount(row[ColTransactionAmount])
		summaries[i].TransactionCount++
		summaries[i].TotalAmount = summaries[i].TotalAmount.Add(amount)

		if hasTax {
			summaries[i].ITCAmount = summaries[i].ITCAmount.Add(parseAmount(row[ColTaxAmount]))
		}

		mode := DefaultPaymentMode
		if hasMode {
			mode = row[ColPaymentMode]
		}
		if isCashMode(mode) {
			summaries[i].CashAmount = summaries[i].CashAmount.Add(amount)
		}
	}

	return summaries, nil
}

// isCashMode does an explicit lowercase-and-substring check so values
// like "Cash", "CASH on delivery" and "Petty cash" all count as
// cash-settled, independent of locale.
func isCashMode(mode string) bool {
	return strings.Contains(strings.ToLower(mode), "cash")
}

// parseAmount coerces a numeric cell to a decimal. Currency symbols,
// thousands separators and stray whitespace are stripped first; anything
// still unparseable degrades to zero rather than failing the batch.
func parseAmount(s string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', '₹', ' ', ' ':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
