// Package audit captures the mutation trail of the vendor ledger. Events
// are emitted from domain logic and fanned out to a store plus optional
// external sinks.
package audit

import (
	"context"
	"time"
)

// Action identifies what happened to the ledger.
type Action string

const (
	// ActionVendorCreated: a GSTIN entered the ledger for the first time.
	ActionVendorCreated Action = "vendor_created"

	// ActionVendorUpdated: an existing GSTIN absorbed new transactions.
	ActionVendorUpdated Action = "vendor_updated"

	// ActionBatchConsolidated: a full transaction batch finished merging.
	ActionBatchConsolidated Action = "batch_consolidated"
)

// Event is emitted from domain logic to capture a ledger mutation. Keep
// it transport-agnostic so stores and sinks can fan out.
type Event struct {
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`

	// GSTIN is empty for batch-level events.
	GSTIN      string `json:"gstin,omitempty"`
	VendorName string `json:"vendor_name,omitempty"`

	// BatchID correlates every event produced by one consolidation run.
	BatchID   string `json:"batch_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`

	RiskScore int    `json:"risk_score,omitempty"`
	RiskTier  string `json:"risk_tier,omitempty"`

	// Detail carries a short human-readable summary, e.g. the new and
	// updated counts for a batch event.
	Detail string `json:"detail,omitempty"`
}

// Store persists audit events for later inspection.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByGSTIN(ctx context.Context, gstin string) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// Sink forwards audit events to an external system, e.g. a Kafka topic.
// Sinks are best-effort; a sink failure never blocks the ledger.
type Sink interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
