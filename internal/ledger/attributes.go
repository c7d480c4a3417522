package ledger

import (
	"math/rand"
	"sync"
	"time"

	"vendorwatch/internal/vendor"
)

// AttributeSource supplies the vendor attributes no upstream registry
// reports: the premises classification from field verification and the
// GSTR-3B non-filing streak. Values are drawn once, when a vendor first
// enters the ledger.
type AttributeSource interface {
	Premises() vendor.PremisesType
	MonthsNotFiled() int
}

// RandomAttributes draws attributes uniformly. Safe for concurrent use.
type RandomAttributes struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomAttributes creates a source seeded from the clock; pass a
// fixed rand for reproducible draws.
func NewRandomAttributes(rnd *rand.Rand) *RandomAttributes {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomAttributes{rnd: rnd}
}

func (r *RandomAttributes) Premises() vendor.PremisesType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := vendor.AllPremisesTypes()
	return types[r.rnd.Intn(len(types))]
}

// MonthsNotFiled returns a streak between 0 and 6 months.
func (r *RandomAttributes) MonthsNotFiled() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(7)
}
