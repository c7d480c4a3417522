package ledger

import (
	"context"
	"sort"
	"sync"

	"vendorwatch/internal/vendor"
	"vendorwatch/pkg/domain"
	"vendorwatch/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu      sync.RWMutex
	byGSTIN map[domain.GSTIN]vendor.Vendor
	order   []domain.GSTIN
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byGSTIN: make(map[domain.GSTIN]vendor.Vendor)}
}

func (s *InMemoryStore) Insert(_ context.Context, v vendor.Vendor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byGSTIN[v.GSTIN]; ok {
		return sentinel.ErrConflict
	}
	s.byGSTIN[v.GSTIN] = v
	s.order = append(s.order, v.GSTIN)
	return nil
}

func (s *InMemoryStore) FindByGSTIN(_ context.Context, gstin domain.GSTIN) (vendor.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.byGSTIN[gstin]
	if !ok {
		return vendor.Vendor{}, sentinel.ErrNotFound
	}
	return v, nil
}

func (s *InMemoryStore) Update(_ context.Context, v vendor.Vendor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byGSTIN[v.GSTIN]; !ok {
		return sentinel.ErrNotFound
	}
	s.byGSTIN[v.GSTIN] = v
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]vendor.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]vendor.Vendor, 0, len(s.order))
	for _, gstin := range s.order {
		snapshot = append(snapshot, s.byGSTIN[gstin])
	}
	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].RiskScore > snapshot[j].RiskScore
	})
	return snapshot, nil
}

func (s *InMemoryStore) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order), nil
}
