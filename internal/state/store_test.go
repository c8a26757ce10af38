package state

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestStore_PushTakeInOrder(t *testing.T) {
	var s Store
	s.Expect(2)

	before := time.Now()
	s.Begin("/a.dlt")
	s.Push(LoadResult{Path: "/a.dlt"})
	s.Push(LoadResult{Path: "/b.dlt"})

	got := s.Take()
	if len(got) != 2 || got[0].Path != "/a.dlt" || got[1].Path != "/b.dlt" {
		t.Fatalf("Take = %#v, want a then b", got)
	}
	if again := s.Take(); again != nil {
		t.Fatalf("second Take = %#v, want nil", again)
	}

	snap := s.Snapshot()
	if snap.Pending != 0 || snap.Loaded != 2 || snap.Failed != 0 {
		t.Fatalf("snapshot = %+v, want pending=0 loaded=2 failed=0", snap)
	}
	if snap.Current != "" {
		t.Fatalf("Current = %q, want empty", snap.Current)
	}
	if snap.Busy() {
		t.Fatalf("Busy = true, want false")
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
}

func TestStore_FailureRecorded(t *testing.T) {
	var s Store
	s.Expect(2)

	origErr := errors.New("boom")
	s.Push(LoadResult{Path: "/bad.dlt", Err: origErr})

	snap := s.Snapshot()
	if !snap.Busy() {
		t.Fatalf("Busy = false, want true with one file pending")
	}
	if snap.Failed != 1 {
		t.Fatalf("Failed = %d, want 1", snap.Failed)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError = %v, want wrapping %v", snap.LastError, origErr)
	}

	results := s.Take()
	if len(results) != 1 || results[0].Err == nil {
		t.Fatalf("Take = %#v, want the failed result", results)
	}
}

func TestStore_ConcurrentPush(t *testing.T) {
	var s Store
	const n = 50
	s.Expect(n)

	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Push(LoadResult{Path: "/x.dlt"})
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	if got := len(s.Take()); got != n {
		t.Fatalf("Take returned %d results, want %d", got, n)
	}
	if snap := s.Snapshot(); snap.Loaded != n || snap.Pending != 0 {
		t.Fatalf("snapshot = %+v, want loaded=%d pending=0", snap, n)
	}
}
