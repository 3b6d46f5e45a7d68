package config

import (
	"os"
	"path/filepath"
)

const (
	defaultConfigPath      = "~/.config/commongames/config.toml"
	projectConfigName      = "commongames.toml"
	defaultSteamBaseURL    = "https://api.steampowered.com"
	defaultCatalogPath     = "/ISteamApps/GetAppList/v2/"
	defaultRequestTimeout  = 30
	defaultDownloadTimeout = 300
	defaultCacheFileName   = "appid_to_names.json"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Steam: Steam{
			BaseURL:        defaultSteamBaseURL,
			RequestTimeout: defaultRequestTimeout,
		},
		Catalog: Catalog{
			CachePath:       DefaultCachePath(),
			DownloadTimeout: defaultDownloadTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// DefaultCachePath is the well-known catalog cache location in the platform
// temp directory.
func DefaultCachePath() string {
	return filepath.Join(os.TempDir(), defaultCacheFileName)
}
