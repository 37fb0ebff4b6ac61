package audit

import "context"

// Store is an append-only event sink. Implementations: in-memory (tests,
// single-node dev) and Kafka (production fan-out).
type Store interface {
	Append(ctx context.Context, event Event) error
}
