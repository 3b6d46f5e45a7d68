package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"commongames/internal/testsupport"
)

type cliTestEnv struct {
	server     *testsupport.SteamServer
	configPath string
	cachePath  string
	baseDir    string
}

var scenarioApps = map[int64]string{10: "X", 20: "Y", 30: "Z", 40: "W"}

// setupCLITestEnv isolates HOME and the environment overrides, starts a fake
// Steam API, and writes a config file pointing at it.
func setupCLITestEnv(t *testing.T, apiKey string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("STEAM_API_KEY", "")
	t.Setenv("COMMONGAMES_LOG_LEVEL", "")
	t.Setenv("COMMONGAMES_CACHE_PATH", "")

	server := testsupport.NewSteamServer(t,
		map[string][]int64{"A": {10, 20, 30}, "B": {20, 30, 40}},
		scenarioApps,
	)

	env := &cliTestEnv{
		server:     server,
		configPath: filepath.Join(base, "config.toml"),
		cachePath:  filepath.Join(base, "cache", "appid_to_names.json"),
		baseDir:    base,
	}
	writeTestConfig(t, env.configPath, apiKey, server.URL, env.cachePath)
	return env
}

func writeTestConfig(t *testing.T, path, apiKey, baseURL, cachePath string) {
	t.Helper()
	content := fmt.Sprintf("[steam]\napi_key = %q\nbase_url = %q\n\n[catalog]\ncache_path = %q\n",
		apiKey, baseURL, cachePath)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func appendConfig(t *testing.T, path, content string) {
	t.Helper()
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open config: %v", err)
	}
	defer file.Close()
	if _, err := file.WriteString(content); err != nil {
		t.Fatalf("append config: %v", err)
	}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
