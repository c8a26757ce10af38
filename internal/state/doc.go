// Package state hands files opened in the background over to the UI.
//
// # Overview
//
// Opening a large trace means mapping it and scanning every byte, which
// must not stall the terminal. The loader goroutine opens files one at a
// time and pushes each result into a Store; the UI drains the Store on its
// refresh tick and installs the files into its session.
//
//	Producer (loader):             Consumer (UI tick):
//	┌────────────────┐            ┌────────────────┐
//	│ store.Begin()  │            │                │
//	│ session.Load() │            │                │
//	│ store.Push()   │───────────→│ store.Take()   │
//	│      ↓         │  (mutex)   │ AddFile(...)   │
//	│  next path...  │            │ store.Snapshot()│
//	└────────────────┘            └────────────────┘
//
// # Ownership
//
// A LoadResult carries an open *dltfile.File. Ownership passes to whoever
// calls Take; the Store never closes files.
//
// # Snapshot
//
// Snapshot reports loader progress (pending, loaded and failed counts, the
// file being opened, the last error) for the status bar. It is returned by
// value and its error is wrapped so callers cannot alias the stored one.
//
// The zero Store is ready to use.
package state
