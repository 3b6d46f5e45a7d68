package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"commongames/internal/catalog"
	"commongames/internal/logging"
	"commongames/internal/overlap"
	"commongames/internal/services"
)

type runOptions struct {
	json    bool
	table   bool
	timeout time.Duration
}

func runCommonGames(cmd *cobra.Command, ctx *commandContext, args []string, opts runOptions) error {
	owned, fetcher, err := ctx.steamClients()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return services.Wrap(services.ErrConfiguration, "cli", "run", "at least one steam id is required (usage: commongames <steamid>...)", nil)
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger(cmd)
	if err != nil {
		return err
	}

	runCtx := cmd.Context()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, opts.timeout)
		defer cancel()
	}
	runCtx = services.WithRunID(runCtx, uuid.NewString())
	logging.WithContext(runCtx, logger).Debug("run started",
		logging.Int("accounts", len(args)),
		logging.String("cache_path", cfg.Catalog.CachePath),
	)

	cache := catalog.New(cfg.Catalog.CachePath, fetcher, logger)
	finder := overlap.New(owned, cache, logger)

	result, err := finder.Run(runCtx, args)
	if err != nil {
		return err
	}

	names := collateNames(result.Names)
	out := cmd.OutOrStdout()
	switch {
	case opts.json:
		return writeJSON(cmd, newResultJSON(result, names))
	case opts.table:
		return writeLine(out, renderGamesTable(names))
	default:
		return writeGameList(out, names, shouldColorize(out))
	}
}
