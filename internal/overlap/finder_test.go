package overlap_test

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"commongames/internal/catalog"
	"commongames/internal/games"
	"commongames/internal/logging"
	"commongames/internal/overlap"
	"commongames/internal/services"
	"commongames/internal/steam"
	"commongames/internal/testsupport"
)

type stubOwned struct {
	sets  map[string]games.Set
	errs  map[string]error
	calls []string
}

func (s *stubOwned) OwnedGames(ctx context.Context, accountID string) (games.Set, error) {
	s.calls = append(s.calls, accountID)
	if got, ok := services.AccountIDFromContext(ctx); !ok || got != accountID {
		return nil, errors.New("account id missing from context")
	}
	if err := s.errs[accountID]; err != nil {
		return nil, err
	}
	return s.sets[accountID].Clone(), nil
}

type stubNames struct {
	names map[games.ID]string
	calls int
	got   games.Set
	err   error
}

func (s *stubNames) Resolve(_ context.Context, ids games.Set) (catalog.Resolution, error) {
	s.calls++
	s.got = ids.Clone()
	if s.err != nil {
		return catalog.Resolution{}, s.err
	}
	var res catalog.Resolution
	for _, id := range ids.Sorted() {
		if name, ok := s.names[id]; ok {
			res.Names = append(res.Names, name)
		} else {
			res.Missing = append(res.Missing, id)
		}
	}
	return res, nil
}

func scenario() (*stubOwned, *stubNames) {
	owned := &stubOwned{sets: map[string]games.Set{
		"A": games.NewSet(10, 20, 30),
		"B": games.NewSet(20, 30, 40),
	}}
	names := &stubNames{names: map[games.ID]string{10: "X", 20: "Y", 30: "Z", 40: "W"}}
	return owned, names
}

func TestRunScenario(t *testing.T) {
	owned, names := scenario()
	finder := overlap.New(owned, names, nil)

	result, err := finder.Run(context.Background(), []string{"A", "B"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !result.Common.Equal(games.NewSet(20, 30)) {
		t.Fatalf("unexpected common set: %v", result.Common.Sorted())
	}
	if strings.Join(result.Names, ",") != "Y,Z" {
		t.Fatalf("unexpected names: %v", result.Names)
	}
	if names.calls != 1 {
		t.Fatalf("expected one name resolution, got %d", names.calls)
	}
	if strings.Join(owned.calls, ",") != "A,B" {
		t.Fatalf("accounts must be resolved in order, got %v", owned.calls)
	}
}

func TestRunSingleAccountIsIdentity(t *testing.T) {
	owned, names := scenario()
	result, err := overlap.New(owned, names, nil).Run(context.Background(), []string{"A"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !result.Common.Equal(games.NewSet(10, 20, 30)) {
		t.Fatalf("expected A's full set, got %v", result.Common.Sorted())
	}
}

func TestRunOrderIndependent(t *testing.T) {
	owned, names := scenario()
	owned.sets["C"] = games.NewSet(30, 20, 99)
	forward, err := overlap.New(owned, names, nil).Run(context.Background(), []string{"A", "B", "C"})
	if err != nil {
		t.Fatalf("forward run: %v", err)
	}
	reverse, err := overlap.New(owned, names, nil).Run(context.Background(), []string{"C", "B", "A"})
	if err != nil {
		t.Fatalf("reverse run: %v", err)
	}
	if !forward.Common.Equal(reverse.Common) {
		t.Fatalf("order changed result: %v vs %v", forward.Common.Sorted(), reverse.Common.Sorted())
	}
}

func TestRunEmptyOwnerYieldsEmptyResult(t *testing.T) {
	owned, names := scenario()
	owned.sets["E"] = games.NewSet()
	result, err := overlap.New(owned, names, nil).Run(context.Background(), []string{"E", "A"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Common.Len() != 0 || len(result.Names) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestRunRequiresAccounts(t *testing.T) {
	owned, names := scenario()
	for _, accounts := range [][]string{nil, {"A", "  "}} {
		_, err := overlap.New(owned, names, nil).Run(context.Background(), accounts)
		if !errors.Is(err, services.ErrConfiguration) {
			t.Fatalf("accounts %q: expected configuration error, got %v", accounts, err)
		}
	}
	if len(owned.calls) != 0 || names.calls != 0 {
		t.Fatalf("no resolver should run, got owned=%v names=%d", owned.calls, names.calls)
	}
}

func TestRunAbortsOnResolverError(t *testing.T) {
	owned, names := scenario()
	owned.errs = map[string]error{"B": services.Wrap(services.ErrSchema, "steam", "owned games", "response missing games", nil)}

	result, err := overlap.New(owned, names, nil).Run(context.Background(), []string{"A", "B", "C"})
	if !errors.Is(err, services.ErrSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected no partial result, got %+v", result)
	}
	if strings.Join(owned.calls, ",") != "A,B" {
		t.Fatalf("run should stop at failing account, got %v", owned.calls)
	}
	if names.calls != 0 {
		t.Fatal("names must not resolve after a failure")
	}
}

func TestRunPropagatesNameResolverError(t *testing.T) {
	owned, names := scenario()
	names.err = services.Wrap(services.ErrTransport, "catalog", "download", "steam returned 500", nil)
	if _, err := overlap.New(owned, names, nil).Run(context.Background(), []string{"A"}); !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestRunMissesAreNotFatal(t *testing.T) {
	owned, names := scenario()
	delete(names.names, 30)
	result, err := overlap.New(owned, names, nil).Run(context.Background(), []string{"A", "B"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if strings.Join(result.Names, ",") != "Y" {
		t.Fatalf("unexpected names: %v", result.Names)
	}
	if len(result.Missing) != 1 || result.Missing[0] != 30 {
		t.Fatalf("unexpected missing: %v", result.Missing)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", result.Warnings)
	}
	if kind := services.Kind(result.Warnings[0]); kind != "resolution_miss" {
		t.Fatalf("warning kind = %q, want resolution_miss", kind)
	}
}

func TestRunMissIsLoggedAsWarning(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	owned, names := scenario()
	delete(names.names, 30)

	if _, err := overlap.New(owned, names, logger).Run(context.Background(), []string{"A", "B"}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "WARN overlap: resolution incomplete") || !strings.Contains(out, "error_kind=resolution_miss") {
		t.Fatalf("expected miss warning, got %q", out)
	}
}

func TestRunCompleteResolutionHasNoWarnings(t *testing.T) {
	owned, names := scenario()
	result, err := overlap.New(owned, names, nil).Run(context.Background(), []string{"A", "B"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", result.Warnings)
	}
}

func TestRunAgainstSteamServerAndCatalog(t *testing.T) {
	server := testsupport.NewSteamServer(t,
		map[string][]int64{"A": {10, 20, 30}, "B": {20, 30, 40}},
		map[int64]string{10: "X", 20: "Y", 30: "Z", 40: "W"},
	)
	cfg := testsupport.NewConfig(t, testsupport.WithSteamServer(server))

	client := newSteamClient(t, cfg.Steam.APIKey, cfg.Steam.BaseURL, cfg.Steam.CatalogURL)
	cache := catalog.New(cfg.Catalog.CachePath, client, nil)
	finder := overlap.New(client, cache, nil)

	for i := 0; i < 2; i++ {
		result, err := finder.Run(context.Background(), []string{"A", "B"})
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		got := append([]string(nil), result.Names...)
		sort.Strings(got)
		if strings.Join(got, ",") != "Y,Z" {
			t.Fatalf("run %d: unexpected names %v", i, got)
		}
	}
	if server.AppListCalls() != 1 {
		t.Fatalf("expected one app list download, got %d", server.AppListCalls())
	}
	if server.OwnedCalls() != 4 {
		t.Fatalf("expected one owned-games call per account per run, got %d", server.OwnedCalls())
	}
}

func newSteamClient(t *testing.T, key, baseURL, catalogURL string) *steam.Client {
	t.Helper()
	client, err := steam.New(key, baseURL, steam.WithCatalogURL(catalogURL))
	if err != nil {
		t.Fatalf("steam.New: %v", err)
	}
	return client
}
