// Package overlap drives one common-games run: it fetches each account's
// owned games sequentially, folds them into a running intersection, and
// resolves the surviving IDs to titles through the catalog.
package overlap
