package preflight

import (
	"context"
	"path/filepath"

	"commongames/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config. The Steam
// reachability check is skipped when no API key is configured.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Cache directory", filepath.Dir(cfg.Catalog.CachePath)),
		CheckAPIKey(cfg),
	}
	if cfg.HasAPIKey() {
		results = append(results, CheckSteamAPI(ctx, cfg))
	}
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
