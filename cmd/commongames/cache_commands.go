package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"commongames/internal/catalog"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the app list cache",
	}

	cacheCmd.AddCommand(newCacheStatusCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	cacheCmd.AddCommand(newCacheRefreshCommand(ctx))

	return cacheCmd
}

func newCacheStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the app list cache location and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := maintenanceCache(cmd, ctx)
			if err != nil {
				return err
			}
			status, err := cache.Status()
			if err != nil {
				return err
			}

			rows := [][]string{
				{"Path", status.Path},
				{"Present", yesNo(status.Exists)},
			}
			if status.Exists {
				entries := "unreadable"
				// An existing file never triggers a download.
				if err := cache.Load(cmd.Context()); err == nil {
					entries = strconv.Itoa(cache.Len())
				}
				rows = append(rows,
					[]string{"Size", humanBytes(status.Bytes)},
					[]string{"Updated", status.Modified.Local().Format("2006-01-02 15:04")},
					[]string{"Entries", entries},
				)
			}
			return writeLine(cmd.OutOrStdout(), "App list cache:\n"+renderTable([]string{"Field", "Value"}, rows, nil))
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the app list cache file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := maintenanceCache(cmd, ctx)
			if err != nil {
				return err
			}
			status, err := cache.Status()
			if err != nil {
				return err
			}
			if err := cache.Clear(); err != nil {
				return err
			}
			if !status.Exists {
				fmt.Fprintf(cmd.OutOrStdout(), "No app list cache at %s\n", cache.Path())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed app list cache %s (%s)\n", cache.Path(), humanBytes(status.Bytes))
			return nil
		},
	}
}

func newCacheRefreshCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Download the app list again, replacing the cache file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, fetcher, err := ctx.steamClients()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			cache := catalog.New(cfg.Catalog.CachePath, fetcher, logger)
			if err := cache.Refresh(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Refreshed app list cache %s (%d entries)\n", cache.Path(), cache.Len())
			return nil
		},
	}
}

// maintenanceCache opens the cache without a fetcher; status and clear never
// reach the network.
func maintenanceCache(cmd *cobra.Command, ctx *commandContext) (*catalog.Cache, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.logger(cmd)
	if err != nil {
		return nil, err
	}
	return catalog.New(cfg.Catalog.CachePath, nil, logger), nil
}

func humanBytes(v int64) string {
	const unit = 1024
	if v < unit {
		return fmt.Sprintf("%d B", v)
	}
	div := int64(unit)
	exp := 0
	for n := v / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	value := float64(v) / float64(div)
	return fmt.Sprintf("%.1f %ciB", value, "KMGTPEZY"[exp])
}
