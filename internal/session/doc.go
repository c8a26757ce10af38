// Package session holds the state of a viewing session: the open files,
// the installed filter and its result, the active search, and the
// selection cursor.
//
// # Ownership
//
// A Session belongs to a single goroutine (the UI event loop). Nothing in
// it is locked. Work that should not block that goroutine is split out:
// Load opens and indexes a file anywhere, and BeginFilter returns a
// FilterJob that can run anywhere and whose result is handed back to
// InstallFilter. Only the most recently issued job is installed; older
// results are discarded.
//
// # Invariants
//
//   - Result is ascending and every position is a valid message index of
//     the current file.
//   - Selected is within [0, len(Result)-1], or 0 when Result is empty.
//   - Search hits index into Result. Any change of file or criteria drops
//     the search and resets the selection to 0.
package session
