package audit

import (
	"context"
	"errors"

	"kitledger/pkg/requestcontext"
)

// ErrInboxFull reports that the background worker cannot keep up and an event
// was dropped.
var ErrInboxFull = errors.New("audit inbox full")

// Publisher captures structured audit events. It is append-only and uses the
// store layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		// Request-scoped time, so every event in one request shares one
		// clock reading.
		base.Timestamp = requestcontext.Now(ctx)
	}
	return p.store.Append(ctx, base)
}

// QueuePublisher hands events to a background Worker instead of appending
// inline, keeping slow sinks off the request path. A full inbox drops the
// event and reports ErrInboxFull; the caller logs and moves on.
type QueuePublisher struct {
	inbox chan<- Event
}

func NewQueuePublisher(inbox chan<- Event) *QueuePublisher {
	return &QueuePublisher{inbox: inbox}
}

func (p *QueuePublisher) Emit(ctx context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = requestcontext.Now(ctx)
	}
	select {
	case p.inbox <- base:
		return nil
	default:
		return ErrInboxFull
	}
}
