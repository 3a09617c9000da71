// Package config loads, normalizes, and validates Slidecast configuration.
//
// Configuration is read from a TOML file located at ~/.config/slidecast/config.toml
// or ./slidecast.toml, with built-in defaults applied for anything unset.
// Load returns a fully normalized config: paths are expanded to absolute
// form and every numeric field is clamped or defaulted before validation.
package config
