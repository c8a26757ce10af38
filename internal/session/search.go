package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/dltview/internal/search"
)

// Search compiles pattern and runs it over the current filter result,
// selecting the first hit. An empty pattern clears the search. A pattern
// that fails to compile leaves the previous search in place.
func (s *Session) Search(pattern string, caseSensitive bool) error {
	if pattern == "" {
		s.ClearSearch()
		return nil
	}
	p, err := search.Compile(pattern, caseSensitive)
	if err != nil {
		s.status = fmt.Sprintf("Invalid search pattern: %v", err)
		return err
	}
	s.caseSensitive = caseSensitive
	if len(s.files) == 0 {
		return nil
	}
	return s.runSearch(p)
}

func (s *Session) runSearch(p *search.Pattern) error {
	cur := s.files[s.current]
	res, err := s.searches.Run(context.Background(), cur.file, s.result.Positions, p)
	if err != nil {
		s.status = fmt.Sprintf("Search failed: %v", err)
		s.logger.Error("search failed", zap.Error(err))
		return err
	}

	s.search = search.NewState(p, res.Hits)
	if k, ok := s.search.Current(); ok {
		s.selected = k
		s.status = fmt.Sprintf("Found %d matches for '%s'", len(res.Hits), p.Source())
	} else {
		s.status = fmt.Sprintf("No matches found for '%s'", p.Source())
	}
	return nil
}

// CaseSensitive reports the case mode used for the next search.
func (s *Session) CaseSensitive() bool { return s.caseSensitive }

// ToggleCaseSensitivity flips the case mode and reruns the active search,
// if any, with its original pattern.
func (s *Session) ToggleCaseSensitivity() error {
	s.caseSensitive = !s.caseSensitive
	mode := "Case-sensitive search"
	if !s.caseSensitive {
		mode = "Case-insensitive search"
	}
	if s.search == nil || len(s.files) == 0 {
		s.status = mode
		return nil
	}
	p, err := s.search.Pattern().WithCaseSensitivity(s.caseSensitive)
	if err != nil {
		s.status = fmt.Sprintf("Invalid search pattern: %v", err)
		return err
	}
	return s.runSearch(p)
}

// ClearSearch drops the active search.
func (s *Session) ClearSearch() {
	s.search = nil
}

// SearchState returns the active search, or nil.
func (s *Session) SearchState() *search.State { return s.search }

// NextMatch selects the next hit, wrapping after the last.
func (s *Session) NextMatch() {
	if s.search == nil {
		return
	}
	if k, ok := s.search.Next(); ok {
		s.selected = k
	}
}

// PrevMatch selects the previous hit, wrapping before the first.
func (s *Session) PrevMatch() {
	if s.search == nil {
		return
	}
	if k, ok := s.search.Prev(); ok {
		s.selected = k
	}
}
