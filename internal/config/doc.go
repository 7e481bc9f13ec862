// Package config loads tasktools settings from defaults, TOML files,
// environment variables and command-line overrides, in that order.
package config
