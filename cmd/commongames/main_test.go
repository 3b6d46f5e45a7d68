package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"commongames/internal/services"
	"commongames/internal/testsupport"
)

func TestCommonGamesScenario(t *testing.T) {
	env := setupCLITestEnv(t, "test")

	out, stderr, err := runCLI(t, env, "A", "B")
	if err != nil {
		t.Fatalf("run: %v (stderr=%q)", err, stderr)
	}
	if out != "Common games (2):\n  Y\n  Z\n" {
		t.Fatalf("unexpected stdout %q", out)
	}
	requireContains(t, stderr, "app list cache not found")

	if _, err := os.Stat(env.cachePath); err != nil {
		t.Fatalf("expected cache file: %v", err)
	}

	// Warm cache: no further app list downloads.
	if _, _, err := runCLI(t, env, "B", "A"); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if env.server.AppListCalls() != 1 {
		t.Fatalf("expected one app list download, got %d", env.server.AppListCalls())
	}
	if got := strings.Join(env.server.RequestOrder(), ","); got != "A,B,B,A" {
		t.Fatalf("accounts should be requested in argument order, got %s", got)
	}
}

func TestMissingAPIKeyFailsBeforeNetwork(t *testing.T) {
	env := setupCLITestEnv(t, "")

	out, _, err := runCLI(t, env, "A", "B")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if code := services.ExitCode(err); code == 0 {
		t.Fatal("expected non-zero exit code")
	}
	requireContains(t, err.Error(), "STEAM_API_KEY")
	if out != "" {
		t.Fatalf("expected no stdout, got %q", out)
	}
	if calls := env.server.TotalCalls(); calls != 0 {
		t.Fatalf("expected zero network calls, got %d", calls)
	}
}

func TestAPIKeyFromEnvironment(t *testing.T) {
	env := setupCLITestEnv(t, "")
	t.Setenv("STEAM_API_KEY", "from-env")

	if _, _, err := runCLI(t, env, "A"); err != nil {
		t.Fatalf("run with env key: %v", err)
	}
}

func TestNoAccountsIsConfigurationError(t *testing.T) {
	env := setupCLITestEnv(t, "test")

	_, _, err := runCLI(t, env)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if services.ExitCode(err) != services.ExitConfiguration {
		t.Fatalf("unexpected exit code %d", services.ExitCode(err))
	}
	if env.server.TotalCalls() != 0 {
		t.Fatal("expected no network calls")
	}
}

func TestMalformedAppListIsSchemaError(t *testing.T) {
	env := setupCLITestEnv(t, "test")
	env.server.SetAppList([]byte(`{"apps":[{"appid":20,"name":"Y"}]}`))

	out, _, err := runCLI(t, env, "A", "B")
	if !errors.Is(err, services.ErrSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if services.ExitCode(err) == 0 {
		t.Fatal("expected non-zero exit code")
	}
	if out != "" {
		t.Fatalf("expected no stdout, got %q", out)
	}
	if _, statErr := os.Stat(env.cachePath); !os.IsNotExist(statErr) {
		t.Fatalf("malformed payload must not be cached: %v", statErr)
	}
}

func TestMissingTitleIsToleratedAndReported(t *testing.T) {
	env := setupCLITestEnv(t, "test")
	testsupport.WriteAppList(t, env.cachePath, map[int64]string{20: "Y"})

	out, stderr, err := runCLI(t, env, "A", "B")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "Common games (1):\n  Y\n" {
		t.Fatalf("unexpected stdout %q", out)
	}
	requireContains(t, stderr, "catalog_name_missing")
	requireContains(t, stderr, "app_id=30")
	if env.server.AppListCalls() != 0 {
		t.Fatal("warm cache must not download")
	}
}

func TestJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t, "test")

	out, _, err := runCLI(t, env, "--json", "A", "B")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var payload struct {
		Accounts []string `json:"accounts"`
		Count    int      `json:"count"`
		Games    []string `json:"games"`
		Missing  []int64  `json:"missing_app_ids"`
		Warnings []struct {
			Kind string `json:"kind"`
		} `json:"warnings"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode json: %v (%q)", err, out)
	}
	if payload.Warnings == nil || len(payload.Warnings) != 0 {
		t.Fatalf("expected empty warnings list, got %+v", payload.Warnings)
	}
	if payload.Count != 2 || strings.Join(payload.Games, ",") != "Y,Z" {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if strings.Join(payload.Accounts, ",") != "A,B" || len(payload.Missing) != 0 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestJSONOutputReportsResolutionMiss(t *testing.T) {
	env := setupCLITestEnv(t, "test")
	testsupport.WriteAppList(t, env.cachePath, map[int64]string{20: "Y"})

	out, stderr, err := runCLI(t, env, "--json", "A", "B")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var payload struct {
		Games    []string `json:"games"`
		Missing  []int64  `json:"missing_app_ids"`
		Warnings []struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"warnings"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode json: %v (%q)", err, out)
	}
	if strings.Join(payload.Games, ",") != "Y" || len(payload.Missing) != 1 || payload.Missing[0] != 30 {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if len(payload.Warnings) != 1 || payload.Warnings[0].Kind != "resolution_miss" {
		t.Fatalf("expected one resolution_miss warning, got %+v", payload.Warnings)
	}
	requireContains(t, payload.Warnings[0].Message, "1 app ids have no catalog entry")
	requireContains(t, stderr, "error_kind=resolution_miss")
}

func TestTableOutput(t *testing.T) {
	env := setupCLITestEnv(t, "test")

	out, _, err := runCLI(t, env, "--table", "A", "B")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := strings.Join([]string{
		"Common games (2):",
		"╭───┬──────╮",
		"│ # │ Game │",
		"├───┼──────┤",
		"│ 1 │ Y    │",
		"│ 2 │ Z    │",
		"╰───┴──────╯",
	}, "\n") + "\n"
	if out != want {
		t.Fatalf("unexpected table output:\n%s\nwant:\n%s", out, want)
	}
}

func TestJSONAndTableAreExclusive(t *testing.T) {
	env := setupCLITestEnv(t, "test")
	if _, _, err := runCLI(t, env, "--json", "--table", "A"); err == nil {
		t.Fatal("expected flag conflict error")
	}
}

func TestEmptyIntersection(t *testing.T) {
	env := setupCLITestEnv(t, "test")

	out, _, err := runCLI(t, env, "A", "nobody")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "Common games (0):\n  (none)\n" {
		t.Fatalf("unexpected stdout %q", out)
	}
	if env.server.AppListCalls() != 0 {
		t.Fatal("empty result must not load the catalog")
	}
}

func TestCachePathFlagOverridesConfig(t *testing.T) {
	env := setupCLITestEnv(t, "test")
	override := filepath.Join(env.baseDir, "override", "apps.json")

	if _, _, err := runCLI(t, env, "--cache-path", override, "A", "B"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(override); err != nil {
		t.Fatalf("expected cache at flag path: %v", err)
	}
	if _, err := os.Stat(env.cachePath); !os.IsNotExist(err) {
		t.Fatalf("config cache path should be unused, stat err=%v", err)
	}
}

func TestJSONLogFormat(t *testing.T) {
	env := setupCLITestEnv(t, "test")

	_, stderr, err := runCLI(t, env, "--log-format", "json", "A")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	line := strings.SplitN(strings.TrimSpace(stderr), "\n", 2)[0]
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("expected json diagnostics, got %q", stderr)
	}
	if entry["run_id"] == nil {
		t.Fatalf("expected run_id on diagnostics, got %v", entry)
	}
}

func TestLogFileReceivesDiagnostics(t *testing.T) {
	env := setupCLITestEnv(t, "test")
	logPath := filepath.Join(env.baseDir, "logs", "commongames.log")
	appendConfig(t, env.configPath, fmt.Sprintf("\n[logging]\nfile = %q\n", logPath))

	_, stderr, err := runCLI(t, env, "A", "B")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	logged, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if string(logged) != stderr {
		t.Fatalf("log file should mirror stderr:\nfile=%q\nstderr=%q", logged, stderr)
	}
	requireContains(t, string(logged), "common games resolved")
}

func TestInvalidLogLevelFlag(t *testing.T) {
	env := setupCLITestEnv(t, "test")
	_, _, err := runCLI(t, env, "--log-level", "loud", "A")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
