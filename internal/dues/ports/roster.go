// Package ports defines the interfaces the dues engine consumes. Adapters
// satisfy them from concrete stores; tests satisfy them with stubs.
package ports

import (
	"context"

	"kitledger/internal/roster"
)

// RosterProvider supplies a read-only roster snapshot. The engine never
// mutates roster data; the snapshot must not change during one computation.
type RosterProvider interface {
	Snapshot(ctx context.Context) ([]roster.Student, error)
}
