// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.nebula/nebula.toml or OS-specific config directory)
// 3. Project config file (nebula.toml or .nebula.toml in the working directory)
// 4. Environment variables (NEBULA_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.nebula/nebula.toml (preferred)
// - Windows: %APPDATA%\nebula\nebula.toml
// - macOS: ~/Library/Application Support/nebula/nebula.toml
// - Linux/BSD: $XDG_CONFIG_HOME/nebula/nebula.toml or ~/.config/nebula/nebula.toml
package config
