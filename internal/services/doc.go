// Package services defines shared utilities consumed by the resolver, the
// catalog cache, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp run and account identifiers for logging.
//   - Structured error markers plus the Wrap helper that classify failures as
//     configuration, transport, schema, timeout, or resolution-miss so the CLI
//     can decide between aborting and continuing.
//
// Use these helpers when adding new network or file operations so the
// fatal-versus-tolerated boundary stays uniform.
package services
