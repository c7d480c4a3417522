// Package synth fabricates realistic vendor records and GSTINs for
// seeding and demos. Generated vendors carry the same attribute ranges
// the synthetic registry providers use, so seeded and imported data are
// indistinguishable downstream.
package synth

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"vendorwatch/internal/risk"
	"vendorwatch/internal/vendor"
	"vendorwatch/pkg/domain"
)

// stateCodes are the GST jurisdictions the generator draws from.
var stateCodes = []string{"27", "29", "07", "19", "24", "09", "33", "06", "22", "23"}

var gstr1Statuses = []vendor.GSTR1Status{vendor.GSTR1Filed, vendor.GSTR1NotFiled, vendor.GSTR1NilReturn}
var gstr3bStatuses = []vendor.GSTR3BStatus{vendor.GSTR3BFiled, vendor.GSTR3BNotFiled, vendor.GSTR3BDelayed}

const (
	letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
)

// Generator fabricates vendors. Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator creates a generator seeded from the clock; pass a fixed
// rand for reproducible output.
func NewGenerator(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rnd: rnd}
}

// GSTIN fabricates a structurally valid registration number: state code,
// PAN, entity digit, the constant 'Z' and a checksum character.
func (g *Generator) GSTIN() domain.GSTIN {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gstinLocked()
}

func (g *Generator) gstinLocked() domain.GSTIN {
	state := stateCodes[g.rnd.Intn(len(stateCodes))]

	pan := make([]byte, 0, 10)
	for range 5 {
		pan = append(pan, letters[g.rnd.Intn(len(letters))])
	}
	for range 4 {
		pan = append(pan, digits[g.rnd.Intn(len(digits))])
	}
	pan = append(pan, letters[g.rnd.Intn(len(letters))])

	entity := byte('1') + byte(g.rnd.Intn(9))
	checksum := (letters + digits)[g.rnd.Intn(36)]

	return domain.GSTIN(fmt.Sprintf("%s%s%cZ%c", state, pan, entity, checksum))
}

// Vendors fabricates n scored vendor records. Names are drawn from the
// shared pool first, then numbered.
func (g *Generator) Vendors(n int) []vendor.Vendor {
	g.mu.Lock()
	defer g.mu.Unlock()

	vendors := make([]vendor.Vendor, 0, n)
	for i := range n {
		name := fmt.Sprintf("Vendor %d", i+1)
		if i < len(VendorNames) {
			name = VendorNames[g.rnd.Intn(len(VendorNames))]
		}

		types := vendor.AllPremisesTypes()
		v := vendor.Vendor{
			GSTIN:               g.gstinLocked(),
			Name:                name,
			RegistrationAgeDays: g.between(5, 1500),
			Premises:            types[g.rnd.Intn(len(types))],
			DirectorEntityCount: g.between(1, 50),
			GSTR1Status:         gstr1Statuses[g.rnd.Intn(len(gstr1Statuses))],
			GSTR3BStatus:        gstr3bStatuses[g.rnd.Intn(len(gstr3bStatuses))],
			MonthsNotFiled:      g.rnd.Intn(7),
			TransactionCount:    g.between(5, 200),
			ITCAmount:           decimal.NewFromInt(int64(g.between(10000, 5000000))),
			CashPayments:        decimal.NewFromInt(int64(g.rnd.Intn(100001))),
		}

		assessment := risk.Assess(v)
		v.RiskScore = assessment.Score
		v.RiskFactors = assessment.Factors
		v.RiskTier = risk.Classify(assessment.Score)

		vendors = append(vendors, v)
	}
	return vendors
}

func (g *Generator) between(lo, hi int) int {
	return lo + g.rnd.Intn(hi-lo+1)
}
