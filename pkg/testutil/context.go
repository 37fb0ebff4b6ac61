package testutil

import (
	"context"
	"time"

	"kitledger/pkg/requestcontext"
)

// ContextWithRequestID returns a context carrying a fixed request ID, for
// service tests that skip the HTTP middleware chain.
func ContextWithRequestID(requestID string) context.Context {
	return requestcontext.WithRequestID(context.Background(), requestID)
}

// ContextWithTime returns a context carrying a fixed request time.
func ContextWithTime(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}
