package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"commongames/internal/fileutil"
	"commongames/internal/games"
	"commongames/internal/logging"
	"commongames/internal/services"
)

const (
	component       = "catalog"
	defaultFileName = "appid_to_names.json"
	lockRetryDelay  = 100 * time.Millisecond
)

// Fetcher downloads the raw platform app list.
type Fetcher interface {
	FetchAppList(ctx context.Context) ([]byte, error)
}

// State reports whether the in-memory snapshot is available.
type State int

const (
	StateCold State = iota
	StateWarm
)

func (s State) String() string {
	if s == StateWarm {
		return "warm"
	}
	return "cold"
}

// Resolution is the outcome of translating a set of IDs into titles.
type Resolution struct {
	Names   []string
	Missing []games.ID
}

// MissErr returns a resolution-miss error naming the unresolved IDs, or nil
// when every ID resolved.
func (r Resolution) MissErr() error {
	if len(r.Missing) == 0 {
		return nil
	}
	return services.Wrap(services.ErrResolutionMiss, component, "resolve", fmt.Sprintf("%d app ids have no catalog entry", len(r.Missing)), nil)
}

// Status describes the on-disk cache file.
type Status struct {
	Path     string
	Exists   bool
	Bytes    int64
	Modified time.Time
}

// Cache serves app titles from a local copy of the full app list. The file
// is downloaded only when absent; once present it is treated as valid.
type Cache struct {
	path    string
	fetcher Fetcher
	logger  *slog.Logger

	mu    sync.Mutex
	state State
	names map[games.ID]string
}

// DefaultPath returns the well-known cache location in the platform temp directory.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), defaultFileName)
}

// New creates a cold cache. An empty path selects DefaultPath. The fetcher
// may be nil when only maintenance operations (Status, Clear) are needed.
func New(path string, fetcher Fetcher, logger *slog.Logger) *Cache {
	if path == "" {
		path = DefaultPath()
	}
	return &Cache{
		path:    path,
		fetcher: fetcher,
		logger:  logging.NewComponentLogger(logger, component),
	}
}

// Path returns the cache file location.
func (c *Cache) Path() string {
	return c.path
}

// State reports the current cache state.
func (c *Cache) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Len returns the number of catalog entries held in memory.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.names)
}

// Load moves the cache from cold to warm. It downloads the app list only when
// the cache file is absent and is a no-op once warm.
func (c *Cache) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked(ctx)
}

func (c *Cache) loadLocked(ctx context.Context) error {
	if c.state == StateWarm {
		return nil
	}
	logger := logging.WithContext(ctx, c.logger)

	exists, err := fileutil.RegularFileExists(c.path)
	if err != nil {
		return services.Wrap(services.ErrTransport, component, "load", "stat cache file", err)
	}
	var names map[games.ID]string
	if exists {
		logger.Info("found app list cache", logging.String("path", c.path))
	} else {
		logger.Info("app list cache not found; downloading", logging.String("path", c.path))
		if names, err = c.download(ctx, false); err != nil {
			return err
		}
	}
	if names == nil {
		if names, err = c.readFile(); err != nil {
			return err
		}
	}

	c.setWarm(names)
	logger.Debug("app list cache loaded", logging.Int("entries", len(names)))
	return nil
}

func (c *Cache) readFile() (map[games.ID]string, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, component, "load", "read cache file", err)
	}
	names, err := parseAppList(data)
	if err != nil {
		return nil, services.Wrap(services.ErrSchema, component, "load", "parse "+c.path, err)
	}
	return names, nil
}

func (c *Cache) setWarm(names map[games.ID]string) {
	c.names = names
	c.state = StateWarm
}

// Resolve translates ids into titles in the set's iteration order. IDs
// without a catalog entry are logged, recorded in Missing, and omitted from
// Names. An empty set resolves without touching the cache.
func (c *Cache) Resolve(ctx context.Context, ids games.Set) (Resolution, error) {
	res := Resolution{Names: make([]string, 0, ids.Len())}
	if ids.Len() == 0 {
		return res, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadLocked(ctx); err != nil {
		return Resolution{}, err
	}

	logger := logging.WithContext(ctx, c.logger)
	for id := range ids {
		name, ok := c.names[id]
		if !ok {
			logging.WarnWithContext(logger, "cannot find name for app id", "catalog_name_missing",
				logging.Int64("app_id", int64(id)),
				logging.String(logging.FieldErrorHint, "refresh the app list cache to pick up newly released games"),
				logging.String(logging.FieldImpact, "game omitted from results"),
			)
			res.Missing = append(res.Missing, id)
			continue
		}
		res.Names = append(res.Names, name)
	}
	slices.Sort(res.Missing)
	return res, nil
}

// Lookup returns the title for a single app ID.
func (c *Cache) Lookup(ctx context.Context, id games.ID) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadLocked(ctx); err != nil {
		return "", false, err
	}
	name, ok := c.names[id]
	return name, ok, nil
}

// Status inspects the cache file without loading it.
func (c *Cache) Status() (Status, error) {
	status := Status{Path: c.path}
	info, err := os.Stat(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return status, nil
		}
		return status, services.Wrap(services.ErrTransport, component, "status", "stat cache file", err)
	}
	status.Exists = true
	status.Bytes = info.Size()
	status.Modified = info.ModTime()
	return status, nil
}

// Clear deletes the cache file and drops the in-memory snapshot. Clearing an
// absent file is not an error.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return services.Wrap(services.ErrTransport, component, "clear", "remove cache file", err)
	}
	c.state = StateCold
	c.names = nil
	c.logger.Debug("app list cache cleared", logging.String("path", c.path))
	return nil
}

// Refresh downloads the app list even when a cache file exists, then loads it.
func (c *Cache) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	logger := logging.WithContext(ctx, c.logger)
	logger.Info("refreshing app list cache", logging.String("path", c.path))
	names, err := c.download(ctx, true)
	if err != nil {
		return err
	}
	c.setWarm(names)
	logger.Debug("app list cache loaded", logging.Int("entries", len(names)))
	return nil
}

// download fetches the app list, validates it, and writes it verbatim,
// returning the parsed map. The write holds an exclusive lock on a sibling
// lock file and goes through a synced temp file and rename so concurrent
// invocations never observe a partial file. Unless force is set, a file that
// appeared while waiting for the lock is reused and the map is nil.
func (c *Cache) download(ctx context.Context, force bool) (map[games.ID]string, error) {
	if c.fetcher == nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "download", "no app list fetcher configured", nil)
	}
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrTransport, component, "download", "create cache directory", err)
	}

	lock := flock.New(c.path + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, component, "download", "acquire cache lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrTransport, component, "download", "cache lock unavailable", nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			c.logger.Debug("release cache lock failed", logging.Error(err))
		}
	}()

	if !force {
		if exists, err := fileutil.RegularFileExists(c.path); err == nil && exists {
			c.logger.Debug("app list cache written by another process", logging.String("path", c.path))
			return nil, nil
		}
	}

	body, err := c.fetcher.FetchAppList(ctx)
	if err != nil {
		return nil, err
	}
	names, err := parseAppList(body)
	if err != nil {
		return nil, services.Wrap(services.ErrSchema, component, "download", "app list payload", err)
	}
	if err := fileutil.WriteFileSynced(c.path, body, 0o644); err != nil {
		return nil, services.Wrap(services.ErrTransport, component, "download", "write cache file", err)
	}
	c.logger.Debug("app list cache written", logging.String("path", c.path), logging.Int("bytes", len(body)))
	return names, nil
}

type appListEnvelope struct {
	AppList *struct {
		Apps *[]appEntry `json:"apps"`
	} `json:"applist"`
}

type appEntry struct {
	AppID json.RawMessage `json:"appid"`
	Name  *string         `json:"name"`
}

// parseAppList builds the id-to-title map from a GetAppList payload. Missing
// applist or apps fields, or an entry without an integer appid and string
// name, is an error.
func parseAppList(data []byte) (map[games.ID]string, error) {
	var payload appListEnvelope
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode app list: %w", err)
	}
	if payload.AppList == nil {
		return nil, errors.New("payload missing applist")
	}
	if payload.AppList.Apps == nil {
		return nil, errors.New("payload missing applist.apps")
	}
	apps := *payload.AppList.Apps
	names := make(map[games.ID]string, len(apps))
	for i, app := range apps {
		if len(app.AppID) == 0 || string(app.AppID) == "null" {
			return nil, fmt.Errorf("apps[%d] missing appid", i)
		}
		id, err := strconv.ParseInt(string(app.AppID), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("apps[%d] appid is not an integer: %w", i, err)
		}
		if app.Name == nil {
			return nil, fmt.Errorf("apps[%d] missing name", i)
		}
		names[games.ID(id)] = *app.Name
	}
	return names, nil
}
