package cli

// syncState tracks one screen's synchronized collection: the items, a
// loading flag, and the last fetch error. Every fetch gets a generation
// token from begin; apply publishes only the most recent generation, so a
// slow fetch that loses the race can neither overwrite newer data nor clear
// a loading flag it no longer owns. Late completions for popped views fall
// out the same way.
//
// All methods run on the bubbletea update loop, which is the single writer
// of published state.
type syncState[T any] struct {
	items   []T
	loading bool
	err     error
	gen     int
}

// begin marks a new fetch in flight and returns its generation token.
func (s *syncState[T]) begin() int {
	s.gen++
	s.loading = true
	return s.gen
}

// apply publishes a completed fetch and reports whether it was accepted.
// Failures clear the collection: stale data is never preserved implicitly
// behind an error.
func (s *syncState[T]) apply(gen int, items []T, err error) bool {
	if gen != s.gen {
		return false
	}
	s.loading = false
	if err != nil {
		s.items = nil
		s.err = err
		return true
	}
	s.items = items
	s.err = nil
	return true
}
