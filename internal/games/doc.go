// Package games holds the small domain vocabulary shared by the resolver, the
// catalog cache, and the intersection pipeline: numeric game IDs, unordered ID
// sets, and the accumulator that folds per-account sets into their common
// intersection.
package games
