package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/dltview/internal/dltfile"
	"github.com/five82/dltview/internal/index"
)

// LoadResult is the outcome of opening one file in the background.
type LoadResult struct {
	Path   string
	File   *dltfile.File
	Fields *index.Fields
	Err    error
}

// Snapshot represents the loader progress visible to the UI.
type Snapshot struct {
	Pending     int
	Loaded      int
	Failed      int
	Current     string // path being opened, empty when idle
	LastError   error
	LastUpdated time.Time
}

// Busy reports whether files are still being opened.
func (s Snapshot) Busy() bool {
	return s.Pending > 0
}

// Store hands opened files from the loader goroutine to the UI.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	inbox    []LoadResult
}

// Expect records that n more files are queued for loading.
func (s *Store) Expect(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Pending += n
	s.snapshot.LastUpdated = time.Now()
}

// Begin marks path as the file currently being opened.
func (s *Store) Begin(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Current = path
	s.snapshot.LastUpdated = time.Now()
}

// Push queues a finished load for the UI. Failures are recorded in the
// snapshot and still delivered so the UI can report them.
func (s *Store) Push(r LoadResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inbox = append(s.inbox, r)
	if s.snapshot.Pending > 0 {
		s.snapshot.Pending--
	}
	if s.snapshot.Current == r.Path {
		s.snapshot.Current = ""
	}
	if r.Err != nil {
		s.snapshot.Failed++
		s.snapshot.LastError = r.Err
	} else {
		s.snapshot.Loaded++
	}
	s.snapshot.LastUpdated = time.Now()
}

// Take removes and returns every queued result in arrival order.
func (s *Store) Take() []LoadResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.inbox) == 0 {
		return nil
	}
	out := s.inbox
	s.inbox = nil
	return out
}

// Snapshot returns a copy of the current progress.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
