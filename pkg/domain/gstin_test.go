package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "vendorwatch/pkg/domain-errors"
)

// TestParseGSTIN_Invariants validates the structural invariant enforced at
// trust boundaries: 2-digit state code, PAN segment, entity number 1-9,
// two checksum characters.
func TestParseGSTIN_Invariants(t *testing.T) {
	valid := "27ABCDE1234F1Z5"

	t.Run("accepts a well-formed GSTIN", func(t *testing.T) {
		g, err := ParseGSTIN(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, g.String())
		assert.Equal(t, "27", g.StateCode())
		assert.Equal(t, "ABCDE1234F", g.PAN())
	})

	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"too short", "27ABCDE1234F1Z"},
		{"too long", valid + "X"},
		{"non-numeric state code", "2XABCDE1234F1Z5"},
		{"lowercase PAN letters", "27abcde1234F1Z5"},
		{"digits in PAN letter positions", "2712345E1234F1Z5"[:15]},
		{"entity number zero", "27ABCDE1234F0Z5"},
		{"whitespace", strings.Repeat(" ", 15)},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := ParseGSTIN(tt.input)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
}

func TestGSTIN_IsZero(t *testing.T) {
	var g GSTIN
	assert.True(t, g.IsZero())

	g, err := ParseGSTIN("07FGHIJ5678K2Z9")
	require.NoError(t, err)
	assert.False(t, g.IsZero())
}
