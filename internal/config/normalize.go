package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// envOverrides lists the environment variables consulted after the config file.
type envOverrides struct {
	SteamAPIKey string `env:"STEAM_API_KEY"`
	LogLevel    string `env:"COMMONGAMES_LOG_LEVEL"`
	CachePath   string `env:"COMMONGAMES_CACHE_PATH"`
}

func (c *Config) normalize() error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	c.normalizeSteam(overrides)
	if err := c.normalizeCatalog(overrides); err != nil {
		return err
	}
	return c.normalizeLogging(overrides)
}

func (c *Config) normalizeSteam(overrides envOverrides) {
	c.Steam.APIKey = strings.TrimSpace(c.Steam.APIKey)
	if c.Steam.APIKey == "" {
		c.Steam.APIKey = strings.TrimSpace(overrides.SteamAPIKey)
	}
	c.Steam.BaseURL = strings.TrimRight(strings.TrimSpace(c.Steam.BaseURL), "/")
	if c.Steam.BaseURL == "" {
		c.Steam.BaseURL = defaultSteamBaseURL
	}
	c.Steam.CatalogURL = strings.TrimSpace(c.Steam.CatalogURL)
	if c.Steam.CatalogURL == "" {
		c.Steam.CatalogURL = c.Steam.BaseURL + defaultCatalogPath
	}
}

func (c *Config) normalizeCatalog(overrides envOverrides) error {
	if value := strings.TrimSpace(overrides.CachePath); value != "" {
		c.Catalog.CachePath = value
	}
	if strings.TrimSpace(c.Catalog.CachePath) == "" {
		c.Catalog.CachePath = DefaultCachePath()
	}
	var err error
	if c.Catalog.CachePath, err = expandPath(c.Catalog.CachePath); err != nil {
		return fmt.Errorf("catalog.cache_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging(overrides envOverrides) error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if value := strings.TrimSpace(overrides.LogLevel); value != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) == "" {
		c.Logging.File = ""
		return nil
	}
	var err error
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
