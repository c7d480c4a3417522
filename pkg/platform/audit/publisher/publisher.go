// Package publisher delivers audit events to the store and any attached
// sinks, synchronously by default or through a bounded async buffer.
package publisher

import (
	"context"
	"log/slog"
	"sync"

	audit "vendorwatch/pkg/platform/audit"
	"vendorwatch/pkg/requestcontext"
)

type Publisher struct {
	store  audit.Store
	sinks  []audit.Sink
	logger *slog.Logger

	inbox     chan audit.Event
	done      chan struct{}
	closeOnce sync.Once
}

type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to asynchronous delivery with a
// bounded inbox. When the inbox is full, Emit drops the event rather
// than block the caller.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		if size > 0 {
			p.inbox = make(chan audit.Event, size)
		}
	}
}

// WithSink attaches an external sink. Sink failures are logged, never
// returned to the emitter.
func WithSink(sink audit.Sink) Option {
	return func(p *Publisher) {
		if sink != nil {
			p.sinks = append(p.sinks, sink)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, done: make(chan struct{})}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		go p.run()
	} else {
		close(p.done)
	}
	return p
}

// Emit records an event. A zero timestamp is stamped from the request
// context, so every event of one batch carries the same instant. In
// async mode delivery is best-effort.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx).UTC()
	}

	if p.inbox == nil {
		return p.deliver(ctx, event)
	}

	select {
	case p.inbox <- event:
		return nil
	default:
		p.log(ctx, "audit event dropped, buffer full", "action", event.Action, "gstin", event.GSTIN)
		return nil
	}
}

// List returns the audit trail for a GSTIN.
func (p *Publisher) List(ctx context.Context, gstin string) ([]audit.Event, error) {
	return p.store.ListByGSTIN(ctx, gstin)
}

// Recent returns the newest events across all vendors, batch events
// included.
func (p *Publisher) Recent(ctx context.Context, limit int) ([]audit.Event, error) {
	return p.store.ListRecent(ctx, limit)
}

// Close drains any buffered events, then closes the sinks.
func (p *Publisher) Close() {
	p.closeOnce.Do(func() {
		if p.inbox != nil {
			close(p.inbox)
		}
		<-p.done
		for _, sink := range p.sinks {
			if err := sink.Close(); err != nil {
				p.log(context.Background(), "audit sink close failed", "error", err)
			}
		}
	})
}

func (p *Publisher) run() {
	defer close(p.done)
	for event := range p.inbox {
		if err := p.deliver(context.Background(), event); err != nil {
			p.log(context.Background(), "audit delivery failed", "action", event.Action, "error", err)
		}
	}
}

func (p *Publisher) deliver(ctx context.Context, event audit.Event) error {
	err := p.store.Append(ctx, event)
	for _, sink := range p.sinks {
		if sinkErr := sink.Publish(ctx, event); sinkErr != nil {
			p.log(ctx, "audit sink publish failed", "action", event.Action, "error", sinkErr)
		}
	}
	return err
}

func (p *Publisher) log(ctx context.Context, msg string, args ...any) {
	if p.logger != nil {
		p.logger.WarnContext(ctx, msg, args...)
	}
}
