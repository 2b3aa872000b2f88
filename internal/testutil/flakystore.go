package testutil

import (
	"context"

	"storedesk/internal/record"
)

// FlakyStore wraps a record store and injects failures per operation.
// A nil error field delegates to the inner store.
type FlakyStore struct {
	Inner record.Store

	QueryErr error
	SaveErr  error

	// DeleteErr fails deletes of specific identities; DeleteAllErr fails
	// every delete.
	DeleteErr    map[string]error
	DeleteAllErr error
}

// NewFlakyStore wraps the given store with no failures configured.
func NewFlakyStore(inner record.Store) *FlakyStore {
	return &FlakyStore{Inner: inner, DeleteErr: make(map[string]error)}
}

func (s *FlakyStore) Query(ctx context.Context, kind string, p record.Predicate) ([]record.Record, error) {
	if s.QueryErr != nil {
		return nil, s.QueryErr
	}
	return s.Inner.Query(ctx, kind, p)
}

func (s *FlakyStore) Save(ctx context.Context, r record.Record) (record.Record, error) {
	if s.SaveErr != nil {
		return record.Record{}, s.SaveErr
	}
	return s.Inner.Save(ctx, r)
}

func (s *FlakyStore) Delete(ctx context.Context, kind, id string) error {
	if s.DeleteAllErr != nil {
		return s.DeleteAllErr
	}
	if err := s.DeleteErr[id]; err != nil {
		return err
	}
	return s.Inner.Delete(ctx, kind, id)
}
