package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"commongames/internal/games"
	"commongames/internal/services"
)

const component = "steam"

const (
	ownedGamesPath = "/IPlayerService/GetOwnedGames/v0001/"
	appListPath    = "/ISteamApps/GetAppList/v2/"
	apiListPath    = "/ISteamWebAPIUtil/GetSupportedAPIList/v0001/"
)

// Client provides access to the read-only Steam Web API endpoints.
type Client struct {
	apiKey     string
	baseURL    string
	catalogURL string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithCatalogURL overrides the full app list endpoint.
func WithCatalogURL(raw string) Option {
	return func(c *Client) {
		if raw = strings.TrimSpace(raw); raw != "" {
			c.catalogURL = raw
		}
	}
}

// New creates a Steam client. The key is passed by value; the client never
// consults the environment.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "new client", "steam api key required", nil)
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "new client", "steam base url required", nil)
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		catalogURL: baseURL + appListPath,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ownedGamesEnvelope keeps every level optional so absent fields are
// distinguishable from empty ones.
type ownedGamesEnvelope struct {
	Response *struct {
		Games *[]ownedGame `json:"games"`
	} `json:"response"`
}

type ownedGame struct {
	AppID json.RawMessage `json:"appid"`
}

// OwnedGames returns the set of app IDs owned by the account. A missing
// response or games field, or an entry without an integer appid, is a schema
// error; an empty games list is a valid empty set.
func (c *Client) OwnedGames(ctx context.Context, accountID string) (games.Set, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "owned games", "account id must not be empty", nil)
	}
	endpoint, err := url.Parse(c.baseURL + ownedGamesPath)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "owned games", "parse steam url", err)
	}
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("steamid", accountID)
	params.Set("format", "json")
	endpoint.RawQuery = params.Encode()

	body, err := c.get(ctx, "owned games", endpoint.String())
	if err != nil {
		return nil, err
	}

	var payload ownedGamesEnvelope
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, services.Wrap(services.ErrSchema, component, "owned games", "decode response", err)
	}
	if payload.Response == nil {
		return nil, services.Wrap(services.ErrSchema, component, "owned games", "payload missing response", nil)
	}
	if payload.Response.Games == nil {
		return nil, services.Wrap(services.ErrSchema, component, "owned games", "payload missing response.games", nil)
	}

	result := make(games.Set, len(*payload.Response.Games))
	for i, game := range *payload.Response.Games {
		if len(game.AppID) == 0 || string(game.AppID) == "null" {
			return nil, services.Wrap(services.ErrSchema, component, "owned games", fmt.Sprintf("games[%d] missing appid", i), nil)
		}
		id, err := strconv.ParseInt(string(game.AppID), 10, 64)
		if err != nil {
			return nil, services.Wrap(services.ErrSchema, component, "owned games", fmt.Sprintf("games[%d] appid is not an integer", i), err)
		}
		result.Add(games.ID(id))
	}
	return result, nil
}

// FetchAppList downloads the full platform app list and returns the raw body
// bytes unchanged.
func (c *Client) FetchAppList(ctx context.Context) ([]byte, error) {
	return c.get(ctx, "app list", c.catalogURL)
}

// HealthCheck verifies that the API is reachable and accepts the key. Steam
// answers GetSupportedAPIList with 403 for an unknown key.
func (c *Client) HealthCheck(ctx context.Context) error {
	endpoint, err := url.Parse(c.baseURL + apiListPath)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, component, "health check", "parse steam url", err)
	}
	params := url.Values{}
	params.Set("key", c.apiKey)
	endpoint.RawQuery = params.Encode()
	_, err = c.get(ctx, "health check", endpoint.String())
	return err
}

func (c *Client) get(ctx context.Context, operation, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, component, operation, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, component, operation, fmt.Sprintf("execute request (latency=%v)", latency), redact(err, c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrTransport, component, operation, fmt.Sprintf("steam returned %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, component, operation, "read response body", err)
	}
	return body, nil
}

// redact strips the API key from errors that embed the request URL.
func redact(err error, key string) error {
	if err == nil || key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return redactedError{msg: strings.ReplaceAll(err.Error(), key, "REDACTED"), cause: err}
}

type redactedError struct {
	msg   string
	cause error
}

func (e redactedError) Error() string { return e.msg }

func (e redactedError) Unwrap() error { return e.cause }
