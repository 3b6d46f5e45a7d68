package overlap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"commongames/internal/catalog"
	"commongames/internal/games"
	"commongames/internal/logging"
	"commongames/internal/services"
)

const component = "overlap"

// OwnedGamesResolver returns the set of games owned by one account.
type OwnedGamesResolver interface {
	OwnedGames(ctx context.Context, accountID string) (games.Set, error)
}

// NameResolver translates game IDs into titles.
type NameResolver interface {
	Resolve(ctx context.Context, ids games.Set) (catalog.Resolution, error)
}

// Result is the outcome of one intersection run.
type Result struct {
	Accounts []string
	Common   games.Set
	Names    []string
	Missing  []games.ID
	// Warnings holds non-fatal errors the run recovered from.
	Warnings []error
}

// Finder computes the games every account owns.
type Finder struct {
	owned  OwnedGamesResolver
	names  NameResolver
	logger *slog.Logger
}

// New constructs a Finder.
func New(owned OwnedGamesResolver, names NameResolver, logger *slog.Logger) *Finder {
	return &Finder{
		owned:  owned,
		names:  names,
		logger: logging.NewComponentLogger(logger, component),
	}
}

// Run resolves each account in argument order, folds the owned sets into
// their intersection, and resolves the survivors to titles. The first
// resolver error aborts the run.
func (f *Finder) Run(ctx context.Context, accounts []string) (*Result, error) {
	if len(accounts) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, component, "run", "at least one steam id is required", nil)
	}
	for i, account := range accounts {
		if strings.TrimSpace(account) == "" {
			return nil, services.Wrap(services.ErrConfiguration, component, "run", fmt.Sprintf("steam id %d is empty", i+1), nil)
		}
	}
	if f.owned == nil || f.names == nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "run", "finder is missing a resolver", nil)
	}

	var acc games.Accumulator
	for _, account := range accounts {
		accountCtx := services.WithAccountID(ctx, account)
		owned, err := f.owned.OwnedGames(accountCtx, account)
		if err != nil {
			return nil, err
		}
		acc.Fold(owned)
		logging.WithContext(accountCtx, f.logger).Info("owned games resolved",
			logging.Int("owned", owned.Len()),
			logging.Int("remaining", acc.Set().Len()),
		)
	}

	common := acc.Set()
	resolution, err := f.names.Resolve(ctx, common)
	if err != nil {
		return nil, err
	}

	logger := logging.WithContext(ctx, f.logger)
	var warnings []error
	if missErr := resolution.MissErr(); missErr != nil {
		if services.IsFatal(missErr) {
			return nil, missErr
		}
		warnings = append(warnings, missErr)
		logger.Warn("resolution incomplete",
			logging.String(logging.FieldErrorKind, services.Kind(missErr)),
			logging.Int("missing", len(resolution.Missing)),
			logging.Error(missErr),
		)
	}
	logger.Info("common games resolved",
		logging.Int("accounts", len(accounts)),
		logging.Int("common", common.Len()),
		logging.Int("named", len(resolution.Names)),
	)

	return &Result{
		Accounts: append([]string(nil), accounts...),
		Common:   common,
		Names:    resolution.Names,
		Missing:  resolution.Missing,
		Warnings: warnings,
	}, nil
}
