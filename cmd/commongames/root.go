package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	cachePath  string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	ctx := newCommandContext(flags)

	var opts runOptions

	rootCmd := &cobra.Command{
		Use:   "commongames [flags] <steamid>...",
		Short: "List the Steam games every given account owns",
		Long: `commongames looks up the games owned by each Steam account, keeps the
ones every account has in common, and prints their titles.

Titles come from a local copy of the full Steam app list. It is downloaded
on first use and reused afterwards; run 'commongames cache refresh' to pick
up newly released games.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommonGames(cmd, ctx, args, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Diagnostic log format (console, json)")
	rootCmd.PersistentFlags().StringVar(&flags.cachePath, "cache-path", "", "App list cache file path")

	rootCmd.Flags().BoolVar(&opts.json, "json", false, "Print the result as JSON")
	rootCmd.Flags().BoolVar(&opts.table, "table", false, "Print the result as a table")
	rootCmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Overall deadline for the run (0 disables)")
	rootCmd.MarkFlagsMutuallyExclusive("json", "table")

	rootCmd.AddCommand(newCacheCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))

	return rootCmd
}
