// Package testutil provides request-context helpers for handler tests.
package testutil

import (
	"context"
	"net/http"
	"time"

	"takeon/pkg/requestcontext"
)

// WithOperator adds an operator label to the request context.
// This simulates what the auth middleware would do for authenticated requests.
func WithOperator(req *http.Request, operator string) *http.Request {
	ctx := requestcontext.WithOperator(req.Context(), operator)
	return req.WithContext(ctx)
}

// WithRequestID adds a request ID to the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	ctx := requestcontext.WithRequestID(req.Context(), requestID)
	return req.WithContext(ctx)
}

// WithFixedTime pins the request timestamp so time-derived values are
// deterministic under test.
func WithFixedTime(req *http.Request, t time.Time) *http.Request {
	ctx := requestcontext.WithTime(req.Context(), t)
	return req.WithContext(ctx)
}

// ContextWithTime returns a background context carrying a fixed timestamp,
// for calling services directly.
func ContextWithTime(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}
