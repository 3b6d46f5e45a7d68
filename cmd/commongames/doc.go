// Package main hosts the commongames CLI entrypoint and command graph.
//
// The root command takes one or more Steam IDs, intersects the games each
// account owns, and prints the shared titles. Subcommands manage the local
// app-list cache, scaffold and validate configuration, and run preflight
// checks. Diagnostics go to stderr so stdout carries only the result.
//
// Keep this package lean: behavior lives in the internal packages and is
// surfaced here through flags and output formatting.
package main
