package ingest

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "vendorwatch/pkg/domain-errors"
)

func parseBatch(t *testing.T, csv string) *Batch {
	t.Helper()
	b, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	return b
}

func TestAggregate_GroupsByVendorAndSplitsCash(t *testing.T) {
	b := parseBatch(t, `vendor_name,gstin,transaction_amount,tax_amount,payment_mode
Super Steel Traders,27ABCDE1234F1Z5,20000,3600,Cash
Super Steel Traders,27ABCDE1234F1Z5,30000,5400,Bank Transfer
`)

	summaries, err := Aggregate(b)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, "27ABCDE1234F1Z5", s.GSTIN.String())
	assert.Equal(t, "Super Steel Traders", s.VendorName)
	assert.Equal(t, 2, s.TransactionCount)
	assert.True(t, s.TotalAmount.Equal(decimal.NewFromInt(50000)), "total %s", s.TotalAmount)
	assert.True(t, s.ITCAmount.Equal(decimal.NewFromInt(9000)), "itc %s", s.ITCAmount)
	assert.True(t, s.CashAmount.Equal(decimal.NewFromInt(20000)), "cash %s", s.CashAmount)
}

func TestAggregate_SeparateVendorsStaySeparate(t *testing.T) {
	b := parseBatch(t, `vendor_name,gstin,transaction_amount
Ruby Traders,29FGHIJ5678K2Z9,1000
Pearl Industries,07KLMNO9012P3Z1,2000
Ruby Traders,29FGHIJ5678K2Z9,500
`)

	summaries, err := Aggregate(b)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// First-seen order is preserved.
	assert.Equal(t, "Ruby Traders", summaries[0].VendorName)
	assert.Equal(t, 2, summaries[0].TransactionCount)
	assert.Equal(t, "Pearl Industries", summaries[1].VendorName)
	assert.Equal(t, 1, summaries[1].TransactionCount)
}

func TestAggregate_MissingMandatoryColumnRejectsBatch(t *testing.T) {
	b := parseBatch(t, `vendor_name,gstin,tax_amount
Ruby Traders,29FGHIJ5678K2Z9,180
`)

	_, err := Aggregate(b)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Contains(t, err.Error(), "transaction_amount")
}

func TestAggregate_MissingSeveralColumnsNamesAll(t *testing.T) {
	b := parseBatch(t, `tax_amount,payment_mode
180,Cash
`)

	_, err := Aggregate(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vendor_name")
	assert.Contains(t, err.Error(), "gstin")
	assert.Contains(t, err.Error(), "transaction_amount")
}

func TestAggregate_OptionalColumnsDefault(t *testing.T) {
	b := parseBatch(t, `vendor_name,gstin,transaction_amount
Ruby Traders,29FGHIJ5678K2Z9,45000
`)

	summaries, err := Aggregate(b)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	// No tax column: ITC defaults to zero. No payment mode: default is
	// Bank Transfer, so nothing counts as cash.
	assert.True(t, summaries[0].ITCAmount.IsZero())
	assert.True(t, summaries[0].CashAmount.IsZero())
}

func TestAggregate_MalformedAmountsCoerceToZero(t *testing.T) {
	b := parseBatch(t, `vendor_name,gstin,transaction_amount,tax_amount
Ruby Traders,29FGHIJ5678K2Z9,not-a-number,90
Ruby Traders,29FGHIJ5678K2Z9,"₹1,500",abc
`)

	summaries, err := Aggregate(b)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, 2, s.TransactionCount, "malformed rows still count")
	assert.True(t, s.TotalAmount.Equal(decimal.NewFromInt(1500)), "currency formatting is stripped, garbage becomes zero: %s", s.TotalAmount)
	assert.True(t, s.ITCAmount.Equal(decimal.NewFromInt(90)))
}

func TestAggregate_CashMatchIsCaseInsensitiveSubstring(t *testing.T) {
	b := parseBatch(t, `vendor_name,gstin,transaction_amount,payment_mode
Ruby Traders,29FGHIJ5678K2Z9,100,CASH
Ruby Traders,29FGHIJ5678K2Z9,200,petty cash
Ruby Traders,29FGHIJ5678K2Z9,400,Cheque
`)

	summaries, err := Aggregate(b)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.True(t, summaries[0].CashAmount.Equal(decimal.NewFromInt(300)))
}

func TestParseCSV(t *testing.T) {
	t.Run("empty input is a validation error", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader(""))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("headers are normalized to lower case", func(t *testing.T) {
		b := parseBatch(t, "Vendor_Name,GSTIN,Transaction_Amount\nRuby Traders,29FGHIJ5678K2Z9,10\n")
		require.NoError(t, b.ValidateSchema())
	})

	t.Run("short rows are padded", func(t *testing.T) {
		b := parseBatch(t, "vendor_name,gstin,transaction_amount\nRuby Traders,29FGHIJ5678K2Z9\n")
		require.Len(t, b.Rows, 1)
		assert.Equal(t, "", b.Rows[0][ColTransactionAmount])
	})
}
