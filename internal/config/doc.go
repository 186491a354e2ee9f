// Package config loads code4food settings.
//
// Settings are resolved in layers, lowest precedence first:
//
//  1. Built-in defaults (Default)
//  2. TOML file, $XDG_CONFIG_HOME/code4food/config.toml by default
//  3. Environment variables prefixed with CODE4FOOD_
//  4. Command-line flags, applied by the caller before Validate
//
// A missing config file is not an error. Durations are written as Go
// duration strings ("5s", "1m30s") in both TOML and the environment.
//
// Example config.toml:
//
//	decay_period = "5s"
//	typing_price = 0.5
//	log_level = "debug"
//
//	[storage]
//	backend = "sqlite"
//	path = "/home/me/.local/state/code4food/state.db"
package config
