// Package preflight provides readiness checks for the Steam Web API and the
// catalog cache directory that commongames depends on.
//
// The CLI "commongames doctor" command calls RunAll and renders each Result.
// A check never returns an error; failures are reported through Result.Detail
// so every check still runs when an earlier one fails.
package preflight
