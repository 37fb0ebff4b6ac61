package roster

import "context"

// Store is interface-driven to keep the engine testable and to allow swapping
// in-memory and PostgreSQL persistence without rewiring business code. The
// dues engine only ever calls List; writes belong to the roster collaborator.
type Store interface {
	List(ctx context.Context) ([]Student, error)
	Get(ctx context.Context, id string) (Student, error)
	Upsert(ctx context.Context, student Student) error
	Delete(ctx context.Context, id string) error
}
