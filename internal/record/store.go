package record

import (
	"context"
	"errors"
)

// Store is the remote record store boundary. Implementations must be safe
// for concurrent use. None of the operations retry internally; a failure is
// reported once and the caller decides what to do with it.
type Store interface {
	// Query returns every record of the given kind matching the predicate.
	// An empty store yields an empty slice, not an error.
	Query(ctx context.Context, kind string, p Predicate) ([]Record, error)

	// Save upserts a record and returns the stored form.
	Save(ctx context.Context, r Record) (Record, error)

	// Delete removes a record by identity. Deleting an unknown identity is
	// an error; repeated deletes are not safe no-ops.
	Delete(ctx context.Context, kind, id string) error
}

var (
	// ErrUnavailable indicates the store could not be reached at all.
	ErrUnavailable = errors.New("record store unreachable")

	// ErrRejected indicates the store refused the request.
	ErrRejected = errors.New("record store rejected the request")

	// ErrNotFound indicates the addressed record does not exist.
	ErrNotFound = errors.New("record not found")
)
