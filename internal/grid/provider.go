package grid

import (
	"context"
	"time"
)

// RequestOptions mirrors the optional request configuration accepted by a
// Remote: method, JSON body and extra headers.
type RequestOptions struct {
	Method  string
	Body    any
	Headers map[string]string
}

// Remote abstracts the forecasting backend. Request performs exactly one call to
// endpoint and decodes the body into out. Any failure is reported as an error;
// callers should not depend on its kind.
type Remote interface {
	Request(ctx context.Context, endpoint string, opts RequestOptions, out any) error
}

// Fallback produces a synthetic envelope for a category.
type Fallback func(params Params) Envelope

// Store keeps the history of live grid snapshots polled for the header indicator.
type Store interface {
	SaveSnapshot(snapshot GridSnapshot)
	GetLatest() (GridSnapshot, error)
	GetRange(from, to time.Time) ([]GridSnapshot, error)
}
