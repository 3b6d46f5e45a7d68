package main

import (
	"errors"

	"github.com/spf13/cobra"

	"commongames/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the cache directory, API key, and Steam reachability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg)

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Name, colorizeStatus(r.Passed, colorize), r.Detail})
			}
			if err := writeLine(out, "Preflight:\n"+renderTable([]string{"Check", "Status", "Detail"}, rows, nil)); err != nil {
				return err
			}
			if preflight.Failed(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}
