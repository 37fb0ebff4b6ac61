package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, caches, and providers
// return these (optionally wrapped) so services can translate them into domain
// errors without inspecting driver-specific failures.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrUnavailable: backing service or resource temporarily unavailable
// - ErrConflict: write lost to a concurrent update
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
