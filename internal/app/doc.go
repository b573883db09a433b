// Package app provides the orchestration layer for the Vitrine application.
//
// # Overview
//
// This package wires together configuration, the catalog client, the filter
// store, the fetch orchestrator, and the UI to create the complete Vitrine
// TUI experience. It serves as the composition root where all dependencies
// are initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load configuration from ~/.config/vitrine/config.toml
//  2. Load user preferences (theme, currency symbol)
//  3. Open a file-backed logger under the data directory
//  4. Initialize the HTTP client for the storefront API
//  5. Restore the persisted session and cart from disk
//  6. Fetch categories and scan the catalog for counts and price bounds
//  7. Build the filter store, URL codec, history, and fetch orchestrator
//  8. Start the TUI and block until the user exits or the context cancels
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()       Read vitrine config
//	       ├─────> catalog.NewClient() Create HTTP client
//	       ├─────> session.NewManager()  Restore account
//	       ├─────> cart.Load()         Restore cart
//	       ├─────> loadCatalog()       Categories + price bounds
//	       ├─────> filter.NewStore()   Canonical filter state
//	       ├─────> fetcher.New()       Sequenced fetch orchestrator
//	       └─────> ui.Run()            Start TUI (blocks)
//
//	Filter change loop:
//	┌─────────────────────────────────────────┐
//	│ key press                               │
//	│  ├─> store.Dispatch(action)             │
//	│  ├─> history.Push/Replace(rendered URL) │
//	│  └─> orchestrator.Refresh()             │
//	│      └─> store.ApplyResult()            │
//	│          └─> UI re-reads Snapshot()     │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// The app package distinguishes between fatal and recoverable errors:
//
// Fatal errors (returned from Run):
//   - Configuration file unreadable or invalid
//   - Catalog client initialization failure (bad API base URL)
//   - An explicit -url deep link that does not parse
//
// Recoverable errors (logged, startup continues):
//   - Category fetch failure (empty category toolbar)
//   - Catalog scan failure (price bounds adopted from the first response)
//   - Corrupt cart or session files (start empty / signed out)
//
// This ensures Vitrine starts even when the storefront API is briefly
// unreachable; the first successful fetch repairs the missing data.
//
// # Configuration
//
// The Options struct allows callers to customize:
//
//   - ConfigPath: Path to config.toml (default: ~/.config/vitrine/config.toml)
//   - PrefsPath: Path to prefs.toml (default: ~/.config/vitrine/prefs.toml)
//   - StartURL: Deep link applied before the first fetch
//   - DebounceMS: Override for the text/price debounce interval
package app
