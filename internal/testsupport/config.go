package testsupport

import (
	"path/filepath"
	"testing"

	"commongames/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp cache path per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Steam.APIKey = "test"
	cfgVal.Steam.CatalogURL = cfgVal.Steam.BaseURL + "/ISteamApps/GetAppList/v2/"
	cfgVal.Catalog.CachePath = filepath.Join(base, "cache", "appid_to_names.json")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAPIKey sets the Steam API key on the test config.
func WithAPIKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Steam.APIKey = key
	}
}

// WithSteamServer points both Steam endpoints at a fake server.
func WithSteamServer(server *SteamServer) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Steam.BaseURL = server.URL
		b.cfg.Steam.CatalogURL = server.URL + "/ISteamApps/GetAppList/v2/"
	}
}
