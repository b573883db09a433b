// Package config handles loading and parsing Vitrine configuration files.
//
// # Overview
//
// This package reads Vitrine's TOML configuration to discover the storefront
// API endpoint and the local data directory. Everything else the application
// stores (cart, session, log file) derives its path from the data directory.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/vitrine/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/vitrine/config.toml
//   - API endpoint: http://127.0.0.1:4000
//   - Data directory: ~/.local/share/vitrine
//   - Page size: 12 products per page
//   - Debounce: 400 ms for text and price filters
//
// # Configuration Fields
//
// The Config struct contains only the fields Vitrine needs:
//
//   - APIBase: Base URL of the storefront HTTP API
//   - DataDir: Directory holding the cart, session, and log files
//   - PageSize: Server page size for product listings
//   - DebounceMS: Idle interval before keystroke-level filters fetch
//
// # TOML Format
//
// Example config.toml:
//
//	api_base = "https://shop.example.com/api"
//	data_dir = "~/.local/share/vitrine"
//	page_size = 12
//	debounce_ms = 400
//
// All fields are optional. Tilde expansion is performed automatically.
//
// # Derived Paths
//
// Config exposes helpers for the files under the data directory:
//
//   - CartPath: <data_dir>/cart.json
//   - SessionDir: <data_dir> (user.json and token live here)
//   - LogPath: <data_dir>/vitrine.log
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error - defaults are used instead.
// This allows Vitrine to work out-of-the-box against a local API.
//
// # Design Philosophy
//
// This package follows the principle of sensible defaults. Vitrine should
// start immediately against a storefront API on the default local port,
// without requiring any configuration file to exist.
//
// The config package is read-only and stateless - it loads configuration
// once at startup and returns an immutable Config struct. No global state
// or singleton patterns are used.
package config
