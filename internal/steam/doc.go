// Package steam provides the minimal Steam Web API client used to resolve
// owned games and to download the platform-wide app list.
//
// OwnedGames issues a single GetOwnedGames request per account and returns
// the app IDs as a games.Set, treating any missing response, games, or appid
// field as a schema error rather than skipping entries. FetchAppList returns
// the raw GetAppList payload so the catalog cache can store it verbatim.
// Every failure is tagged with a services marker; there are no retries.
package steam
