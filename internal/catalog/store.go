package catalog

import "context"

// Store is interface-driven so the engine can swap in-memory and PostgreSQL
// persistence. The dues engine only ever calls List; writes belong to the
// catalog collaborator.
type Store interface {
	List(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id string) (Item, error)
	Upsert(ctx context.Context, item Item) error
	Delete(ctx context.Context, id string) error
}
