package record

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store. It backs the demo mode and most tests.
type MemoryStore struct {
	mu    sync.RWMutex
	kinds map[string]map[string]Record
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{kinds: make(map[string]map[string]Record)}
}

func (s *MemoryStore) Query(ctx context.Context, kind string, p Predicate) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0)
	for _, r := range s.kinds[kind] {
		if p.Match(r) {
			out = append(out, r.Clone())
		}
	}
	// Deterministic order for callers that diff results.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, r Record) (Record, error) {
	if r.Kind == "" || r.ID == "" {
		return Record{}, fmt.Errorf("%w: record kind and id are required", ErrRejected)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byID := s.kinds[r.Kind]
	if byID == nil {
		byID = make(map[string]Record)
		s.kinds[r.Kind] = byID
	}
	byID[r.ID] = r.Clone()
	return r.Clone(), nil
}

func (s *MemoryStore) Delete(ctx context.Context, kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := s.kinds[kind]
	if _, ok := byID[id]; !ok {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, kind, id)
	}
	delete(byID, id)
	return nil
}

// Len reports how many records of the given kind are stored.
func (s *MemoryStore) Len(kind string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.kinds[kind])
}
