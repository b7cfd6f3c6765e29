// Package config loads realmboard's TOML configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/realmboard/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default
//  4. If the file exists but fields are missing or empty, use defaults
//
// # Default Values
//
//   - API endpoint: https://api.sotah.info
//   - Realm refresh: 60 seconds
//   - Session database: ~/.local/share/realmboard/session.db
//   - Log file: ~/.local/share/realmboard/realmboard.log (info, json)
//
// # TOML Format
//
//	api_url = "https://api.sotah.info"
//	poll_seconds = 60
//	session_db = "~/.local/share/realmboard/session.db"
//
//	[log]
//	file = "~/.local/share/realmboard/realmboard.log"
//	level = "info"     # debug, info, warn, error
//	format = "json"    # json or console
//
// Every field is optional. Tilde expansion is performed for session_db and
// log.file; level and format are lower-cased.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, and TOML parse errors. A missing file is not an error.
package config
