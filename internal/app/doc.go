// Package app provides the orchestration layer for dltview.
//
// # Overview
//
// This package wires together configuration, logging, metrics, background
// file loading and the UI. It is the composition root where every
// dependency is created and connected.
//
// # Startup
//
//  1. Load ~/.config/dltview/config.toml and apply command line overrides
//  2. Parse the initial filter (command line query, else config defaults)
//  3. Validate the initial search pattern before touching the terminal
//  4. Open the zap log file and the Prometheus registry
//  5. Create the session and start the loader goroutine
//  6. Run the TUI until the user quits or the context is cancelled
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()     Read config.toml
//	       ├─────> logging.New()     zap logger (no-op without log_file)
//	       ├─────> metrics.Serve()   optional /metrics endpoint
//	       ├─────> session.New()     owned by the UI goroutine
//	       ├─────> StartLoader()     opens files in the background
//	       └─────> ui.Run()          Start TUI (blocks)
//
//	Loader goroutine:
//	┌─────────────────────────────────────────┐
//	│ for each path:                          │
//	│  ├─> session.Load()  map, scan, index   │
//	│  └─> store.Push()                       │
//	│      └─> UI tick: store.Take()          │
//	│          └─> session.AddFile()          │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// Bad configuration, an invalid initial filter or search pattern, and an
// unusable log file are fatal and returned from Run. A file that fails to
// open is reported on the status line and the remaining files still load.
package app
