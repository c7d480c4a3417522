// Package ingest turns uploaded transaction batches into per-vendor
// summary rows. Parsing is deliberately lenient about cell contents -
// accounting exports are messy - but strict about the batch schema:
// a batch missing a mandatory column is rejected whole, before any
// registry mutation.
package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	dErrors "vendorwatch/pkg/domain-errors"
)

// Batch column names. vendor_name, gstin and transaction_amount are
// mandatory; tax_amount and payment_mode are optional with defaults.
const (
	ColVendorName        = "vendor_name"
	ColGSTIN             = "gstin"
	ColTransactionAmount = "transaction_amount"
	ColTaxAmount         = "tax_amount"
	ColPaymentMode       = "payment_mode"
)

// DefaultPaymentMode is assumed when a batch has no payment_mode column.
const DefaultPaymentMode = "Bank Transfer"

var mandatoryColumns = []string{ColVendorName, ColGSTIN, ColTransactionAmount}

// Batch is a parsed tabular upload: a header row plus column-keyed rows.
type Batch struct {
	Columns []string
	Rows    []map[string]string
}

// ParseCSV reads a header-keyed CSV batch. Short rows are padded with
// empty cells and long rows truncated rather than failing, and quoting is
// lazy, since real-world accounting exports rarely round-trip cleanly.
func ParseCSV(r io.Reader) (*Batch, error) {
	reader := csv.NewReader(r)
	// Mismatched column counts are handled by padding/truncation below.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, dErrors.New(dErrors.CodeValidation, "empty batch: no header row found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "failed to read header row")
	}
	for i, h := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	batch := &Batch{Columns: headers}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Structurally broken row: skip it rather than abort the batch.
			continue
		}
		record := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				record[h] = strings.TrimSpace(row[i])
			} else {
				record[h] = ""
			}
		}
		batch.Rows = append(batch.Rows, record)
	}
	return batch, nil
}

// HasColumn reports whether the batch schema includes the column.
func (b *Batch) HasColumn(name string) bool {
	for _, c := range b.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ValidateSchema rejects the batch when any mandatory column is absent.
// The error names every missing column so the uploader can fix the export
// in one pass.
func (b *Batch) ValidateSchema() error {
	var missing []string
	for _, col := range mandatoryColumns {
		if !b.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return dErrors.Newf(dErrors.CodeValidation, "missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
