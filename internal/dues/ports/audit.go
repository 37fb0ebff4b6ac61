package ports

import (
	"context"

	"kitledger/internal/audit"
)

// AuditPublisher records reconciliation runs. Emission failures are logged
// and never fail a query.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
