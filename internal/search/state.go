package search

import "slices"

// State is an active search: its pattern, the hits over the current filter
// result, and a cursor into the hits.
type State struct {
	pattern *Pattern
	hits    []int
	cursor  int
}

// NewState creates a state positioned on the first hit.
func NewState(p *Pattern, hits []int) *State {
	return &State{pattern: p, hits: hits}
}

func (s *State) Pattern() *Pattern { return s.pattern }

func (s *State) Hits() []int { return s.hits }

// Cursor returns the position of the cursor within Hits.
func (s *State) Cursor() int { return s.cursor }

// Current returns the filter-result index under the cursor. ok is false
// when there are no hits.
func (s *State) Current() (int, bool) {
	if len(s.hits) == 0 {
		return 0, false
	}
	return s.hits[s.cursor], true
}

// Next advances the cursor, wrapping after the last hit.
func (s *State) Next() (int, bool) {
	if len(s.hits) == 0 {
		return 0, false
	}
	s.cursor = (s.cursor + 1) % len(s.hits)
	return s.hits[s.cursor], true
}

// Prev moves the cursor back, wrapping before the first hit.
func (s *State) Prev() (int, bool) {
	if len(s.hits) == 0 {
		return 0, false
	}
	s.cursor = (s.cursor - 1 + len(s.hits)) % len(s.hits)
	return s.hits[s.cursor], true
}

// IsHit reports whether filter-result index k is a hit.
func (s *State) IsHit(k int) bool {
	_, found := slices.BinarySearch(s.hits, k)
	return found
}
