package ports

import (
	"context"

	"kitledger/internal/catalog"
)

// CatalogProvider supplies a read-only catalog snapshot. The engine never
// mutates catalog data; the snapshot must not change during one computation.
type CatalogProvider interface {
	Snapshot(ctx context.Context) ([]catalog.Item, error)
}
