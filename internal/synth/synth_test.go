package synth

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorwatch/internal/risk"
	"vendorwatch/pkg/domain"
)

func TestGeneratorGSTIN(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(1)))

	for range 100 {
		gstin := g.GSTIN()
		parsed, err := domain.ParseGSTIN(gstin.String())
		require.NoError(t, err, "generated GSTIN %q must be structurally valid", gstin)
		assert.Contains(t, []string{"27", "29", "07", "19", "24", "09", "33", "06", "22", "23"}, parsed.StateCode())
	}
}

func TestGeneratorVendors(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(42)))

	vendors := g.Vendors(50)
	require.Len(t, vendors, 50)

	seen := make(map[domain.GSTIN]bool)
	for _, v := range vendors {
		assert.False(t, seen[v.GSTIN], "GSTINs should not repeat in one run")
		seen[v.GSTIN] = true

		assert.NotEmpty(t, v.Name)
		assert.GreaterOrEqual(t, v.RegistrationAgeDays, 5)
		assert.LessOrEqual(t, v.RegistrationAgeDays, 1500)
		assert.GreaterOrEqual(t, v.DirectorEntityCount, 1)
		assert.LessOrEqual(t, v.DirectorEntityCount, 50)
		assert.LessOrEqual(t, v.MonthsNotFiled, 6)

		assert.Equal(t, risk.Classify(v.RiskScore), v.RiskTier, "tier must match the score")
		score, factors := risk.Score(v)
		assert.Equal(t, score, v.RiskScore, "stored score must match a recompute")
		assert.Equal(t, factors, v.RiskFactors)
	}
}

func TestGeneratorReproducible(t *testing.T) {
	a := NewGenerator(rand.New(rand.NewSource(7))).Vendors(10)
	b := NewGenerator(rand.New(rand.NewSource(7))).Vendors(10)
	assert.Equal(t, a, b)
}
