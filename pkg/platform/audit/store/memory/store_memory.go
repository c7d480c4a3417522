package memory

import (
	"context"
	"sync"

	audit "vendorwatch/pkg/platform/audit"
)

type InMemoryStore struct {
	mu      sync.RWMutex
	byGSTIN map[string][]audit.Event
	ordered []audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byGSTIN: make(map[string][]audit.Event)}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byGSTIN = make(map[string][]audit.Event)
	s.ordered = nil
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if event.GSTIN != "" {
		s.byGSTIN[event.GSTIN] = append(s.byGSTIN[event.GSTIN], event)
	}
	s.ordered = append(s.ordered, event)
	return nil
}

func (s *InMemoryStore) ListByGSTIN(_ context.Context, gstin string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.byGSTIN[gstin]...), nil
}

// ListRecent returns the most recent N events in append order.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := len(s.ordered) - limit
	if start < 0 {
		start = 0
	}
	return append([]audit.Event{}, s.ordered[start:]...), nil
}
