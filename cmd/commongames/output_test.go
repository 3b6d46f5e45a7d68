package main

import (
	"strings"
	"testing"
)

func TestRenderTableKeepsHeaderCase(t *testing.T) {
	got := renderTable([]string{"Field", "Value"}, [][]string{{"Path", "/tmp/appid_to_names.json"}, {"Present"}}, nil)
	want := strings.Join([]string{
		"╭─────────┬──────────────────────────╮",
		"│ Field   │ Value                    │",
		"├─────────┼──────────────────────────┤",
		"│ Path    │ /tmp/appid_to_names.json │",
		"│ Present │                          │",
		"╰─────────┴──────────────────────────╯",
	}, "\n")
	if got != want {
		t.Fatalf("unexpected table:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderGamesTableEmpty(t *testing.T) {
	got := renderGamesTable(nil)
	want := strings.Join([]string{
		"Common games (0):",
		"╭───┬────────╮",
		"│ # │ Game   │",
		"├───┼────────┤",
		"│   │ (none) │",
		"╰───┴────────╯",
	}, "\n")
	if got != want {
		t.Fatalf("unexpected table:\n%s\nwant:\n%s", got, want)
	}
}

func TestCollateNamesIgnoresCase(t *testing.T) {
	got := collateNames([]string{"zeta", "Alpha", "beta"})
	if strings.Join(got, ",") != "Alpha,beta,zeta" {
		t.Fatalf("unexpected order: %v", got)
	}
}
