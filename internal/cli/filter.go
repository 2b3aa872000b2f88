package cli

import (
	"sort"
	"strings"

	"storedesk/internal/domain"
)

// The filter overlay is a pure projection over the synchronized collection:
// it never mutates the source of truth.

// matchesSearch reports whether any field contains the search string,
// case-insensitively. An empty search matches everything.
func matchesSearch(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

// matchesStatus reports whether the status passes the optional filter.
func matchesStatus(filter *domain.Status, status domain.Status) bool {
	return filter == nil || status == *filter
}

// cycleStatusFilter advances nil → Open → In Progress → Closed → nil.
func cycleStatusFilter(filter *domain.Status) *domain.Status {
	if filter == nil {
		s := domain.AllStatuses[0]
		return &s
	}
	for i, s := range domain.AllStatuses {
		if s == *filter {
			if i == len(domain.AllStatuses)-1 {
				return nil
			}
			next := domain.AllStatuses[i+1]
			return &next
		}
	}
	return nil
}

// filterRows returns the ordered subsequence of items satisfying keep.
func filterRows[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// sortRows sorts items in place with a stable order.
func sortRows[T any](items []T, less func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

// selection is a set of record identities scoped to the currently rendered
// projection.
type selection map[string]struct{}

func (s selection) toggle(id string) {
	if _, ok := s[id]; ok {
		delete(s, id)
		return
	}
	s[id] = struct{}{}
}

func (s selection) has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s selection) ids() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// pruneSelection intersects the selection with the identities present in
// the collection, so a refresh never leaves dangling selection references.
func pruneSelection[T any](sel selection, items []T, id func(T) string) {
	known := make(map[string]struct{}, len(items))
	for _, it := range items {
		known[id(it)] = struct{}{}
	}
	for s := range sel {
		if _, ok := known[s]; !ok {
			delete(sel, s)
		}
	}
}
