// Package config loads, normalizes, and validates the reshelf TOML
// configuration.
package config
