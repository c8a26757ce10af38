// Package ui is the Bubble Tea front end of dltview.
//
// The Model owns the session.Session: every session call happens on the
// Bubble Tea update goroutine. Files opened by the loader arrive through
// state.Store on each tick, and filter jobs run as commands whose results
// come back as messages and are installed only if no newer job was issued.
//
// Layout, top to bottom: file header, filter and key hint bar, message
// list, optional detail pane, and a status line that doubles as the
// search and filter prompt.
package ui
