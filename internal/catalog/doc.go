// Package catalog maintains the local app-list cache that maps Steam app IDs
// to game titles.
//
// # Cache policy
//
// The cache starts cold. Loading checks for the cache file (default:
// <temp dir>/appid_to_names.json). When it exists the file is used as-is,
// without any network access; when it is absent the full GetAppList payload
// is downloaded once and written verbatim. The file has no expiry: its
// presence is the only validity check, so newly released games stay
// unresolvable until the file is removed or refreshed.
//
// Cold-path writes hold an exclusive flock on <path>.lock and go through a
// synced temp file plus rename, so two invocations racing on an empty cache
// directory download at most once each and never read a partial file.
//
// # Resolution
//
// Resolve translates a games.Set into titles. IDs missing from the catalog
// are logged as catalog_name_missing warnings and dropped from the output;
// this is the only tolerated failure in a run.
package catalog
