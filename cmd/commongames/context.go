package main

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"commongames/internal/config"
	"commongames/internal/logging"
	"commongames/internal/services"
	"commongames/internal/steam"
)

type commandContext struct {
	flags *rootFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configFile bool
	configErr  error
}

func newCommandContext(flags *rootFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads the configuration once and applies command-line
// overrides, which take precedence over the file and the environment.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.configPath))
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "cli", "load config", "", err)
			return
		}
		if err := c.applyFlagOverrides(cfg); err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "cli", "apply flags", "", err)
			return
		}
		c.config = cfg
		c.configPath = path
		c.configFile = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) applyFlagOverrides(cfg *config.Config) error {
	if value := strings.TrimSpace(c.flags.logLevel); value != "" {
		cfg.Logging.Level = strings.ToLower(value)
	}
	if value := strings.TrimSpace(c.flags.logFormat); value != "" {
		cfg.Logging.Format = strings.ToLower(value)
	}
	if value := strings.TrimSpace(c.flags.cachePath); value != "" {
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return err
		}
		cfg.Catalog.CachePath = expanded
	}
	return cfg.Validate()
}

// logger builds a diagnostic logger writing to the command's error stream.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "cli", "init logger", "", err)
	}
	return logger, nil
}

// steamClients returns one client for per-account lookups and one for the
// app list download, each bounded by its own configured timeout.
func (c *commandContext) steamClients() (owned *steam.Client, catalogFetcher *steam.Client, err error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.ValidateCredentials(); err != nil {
		return nil, nil, services.Wrap(services.ErrConfiguration, "cli", "credentials", "", err)
	}
	owned, err = newSteamClient(cfg, cfg.RequestTimeout())
	if err != nil {
		return nil, nil, err
	}
	catalogFetcher, err = newSteamClient(cfg, cfg.DownloadTimeout())
	if err != nil {
		return nil, nil, err
	}
	return owned, catalogFetcher, nil
}

func newSteamClient(cfg *config.Config, timeout time.Duration) (*steam.Client, error) {
	return steam.New(cfg.Steam.APIKey, cfg.Steam.BaseURL,
		steam.WithCatalogURL(cfg.Steam.CatalogURL),
		steam.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
