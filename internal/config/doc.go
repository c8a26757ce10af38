// Package config loads dltview's startup settings.
//
// # Overview
//
// Settings are read once from a TOML file when the program starts. Every
// field is optional, and a missing file is not an error: the viewer must
// work out of the box on a machine that has never been configured.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided (--config), use it
//  2. Otherwise, use ~/.config/dltview/config.toml
//  3. If the file doesn't exist, use Default()
//  4. If the file exists but fields are missing or empty, use defaults
//
// # TOML Format
//
//	tick_rate_ms = 250          # UI refresh interval, minimum 10
//	workers = 0                 # filter/search fan-out, 0 = GOMAXPROCS
//	index_cache = true          # keep message indices under the user cache dir
//	default_app_id = "APP1"     # initial filter
//	default_context_id = ""
//	default_log_level = "warn"
//	log_file = "~/.local/state/dltview/dltview.log"
//	log_level = "info"
//	metrics_addr = "127.0.0.1:9464"
//
// The default_* keys seed the filter installed before the first file opens.
// Logging is off unless log_file is set, because the terminal belongs to
// the UI. Command line flags override the matching keys.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, invalid TOML, an unknown default_log_level and a negative
// worker count.
package config
