package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"commongames/internal/games"
	"commongames/internal/overlap"
	"commongames/internal/services"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiBlue   = "\x1b[34m"
	ansiBold   = "\x1b[1m"
	listIndent = "  "
)

// collateNames returns a copy of names in English collation order so output
// is stable across runs despite set iteration order.
func collateNames(names []string) []string {
	sorted := append([]string(nil), names...)
	collate.New(language.English, collate.IgnoreCase).SortStrings(sorted)
	return sorted
}

func writeGameList(out io.Writer, names []string, colorize bool) error {
	header := fmt.Sprintf("Common games (%d):", len(names))
	if colorize {
		header = ansiBold + ansiBlue + header + ansiReset
	}
	if _, err := fmt.Fprintln(out, header); err != nil {
		return err
	}
	if len(names) == 0 {
		_, err := fmt.Fprintln(out, listIndent+"(none)")
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(out, listIndent+name); err != nil {
			return err
		}
	}
	return nil
}

func renderGamesTable(names []string) string {
	rows := make([][]string, 0, len(names))
	for i, name := range names {
		rows = append(rows, []string{strconv.Itoa(i + 1), name})
	}
	if len(rows) == 0 {
		rows = append(rows, []string{"", "(none)"})
	}
	return fmt.Sprintf("Common games (%d):\n%s", len(names), renderTable([]string{"#", "Game"}, rows, []columnAlignment{alignRight, alignLeft}))
}

type resultJSON struct {
	Accounts []string      `json:"accounts"`
	Count    int           `json:"count"`
	Games    []string      `json:"games"`
	Missing  []games.ID    `json:"missing_app_ids"`
	Warnings []warningJSON `json:"warnings"`
}

type warningJSON struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func newResultJSON(result *overlap.Result, names []string) resultJSON {
	payload := resultJSON{
		Accounts: result.Accounts,
		Count:    len(names),
		Games:    names,
		Missing:  result.Missing,
	}
	if payload.Games == nil {
		payload.Games = []string{}
	}
	if payload.Missing == nil {
		payload.Missing = []games.ID{}
	}
	payload.Warnings = make([]warningJSON, 0, len(result.Warnings))
	for _, warning := range result.Warnings {
		payload.Warnings = append(payload.Warnings, warningJSON{Kind: services.Kind(warning), Message: warning.Error()})
	}
	return payload
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeLine(out io.Writer, line string) error {
	_, err := fmt.Fprintln(out, line)
	return err
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func colorizeStatus(passed, colorize bool) string {
	label, color := "FAIL", ansiRed
	if passed {
		label, color = "OK", ansiGreen
	}
	if !colorize {
		return label
	}
	return color + label + ansiReset
}
