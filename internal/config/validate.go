package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable. The Steam API key is not
// checked here because cache and config commands run without one; callers
// that contact Steam use ValidateCredentials.
func (c *Config) Validate() error {
	if err := c.validateSteam(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	return c.validateLogging()
}

// ValidateCredentials reports a missing Steam API key.
func (c *Config) ValidateCredentials() error {
	if c.HasAPIKey() {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	return fmt.Errorf("steam.api_key is required. Set STEAM_API_KEY env var or edit %s (create with 'commongames config init')", defaultPath)
}

func (c *Config) validateSteam() error {
	for key, value := range map[string]string{
		"steam.base_url":    c.Steam.BaseURL,
		"steam.catalog_url": c.Steam.CatalogURL,
	} {
		parsed, err := url.Parse(value)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", key, value)
		}
	}
	if c.Steam.RequestTimeout <= 0 {
		return errors.New("steam.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if strings.TrimSpace(c.Catalog.CachePath) == "" {
		return errors.New("catalog.cache_path must be set")
	}
	if c.Catalog.DownloadTimeout <= 0 {
		return errors.New("catalog.download_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json; got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
