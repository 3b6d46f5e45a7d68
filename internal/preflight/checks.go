package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"commongames/internal/config"
	"commongames/internal/services"
	"commongames/internal/steam"
)

const steamCheckTimeout = 10 * time.Second

// CheckAPIKey reports whether a Steam API key is configured.
func CheckAPIKey(cfg *config.Config) Result {
	const name = "Steam API key"
	if cfg == nil || !cfg.HasAPIKey() {
		return Result{Name: name, Detail: "missing (set steam.api_key or STEAM_API_KEY)"}
	}
	return Result{Name: name, Passed: true, Detail: "configured"}
}

// CheckSteamAPI verifies that the Steam Web API is reachable and accepts the
// configured key. It uses a single attempt with a short timeout.
func CheckSteamAPI(ctx context.Context, cfg *config.Config) Result {
	const name = "Steam Web API"

	client, err := steam.New(cfg.Steam.APIKey, cfg.Steam.BaseURL)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}

	checkCtx, cancel := context.WithTimeout(ctx, steamCheckTimeout)
	defer cancel()

	if err := client.HealthCheck(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeSteamError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "API reachable"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// summarizeSteamError produces a human-readable summary for health check failures.
func summarizeSteamError(err error) string {
	if errors.Is(err, services.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (Steam API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (Steam API unreachable)"
	}
	return err.Error()
}
