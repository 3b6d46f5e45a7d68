// Package config loads, normalizes, and validates commongames configuration.
//
// Values come from an optional TOML file (~/.config/commongames/config.toml or
// ./commongames.toml), then environment overrides such as STEAM_API_KEY. The
// resulting Config is passed by value into the components that need it; no
// other package reads the environment.
package config
