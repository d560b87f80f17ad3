// Package trino talks to the OpenSky Network's Trino endpoint: password
// grant token exchange, statement submission, paged result polling and
// query cancellation, backed by the local parquet result cache.
package trino

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"

	"github.com/junzis/opensky-go/pkg/cache"
	"github.com/junzis/opensky-go/pkg/config"
	"github.com/junzis/opensky-go/pkg/frame"
	"github.com/junzis/opensky-go/pkg/opensky"
	"github.com/junzis/opensky-go/pkg/query"
)

const (
	defaultAuthURL = "https://auth.opensky-network.org/auth/realms/opensky-network/protocol/openid-connect/token"
	defaultBaseURL = "https://trino.opensky-network.org"

	defaultClientID = "trino-client"
	defaultUser     = "opensky"
	sourceName      = "opensky"
	catalogName     = "minio"
	schemaName      = "osky"

	// A token is reused only while it stays valid for at least another
	// minute, so a long poll loop never runs into mid-flight expiry.
	tokenMargin = time.Minute

	tokenRetryStep = 500 * time.Millisecond
	tokenRetries   = 2 // retries after the first attempt

	pollInterval   = 100 * time.Millisecond
	requestTimeout = 300 * time.Second
)

type tokenInfo struct {
	value  string
	expiry time.Time
}

// Client runs declarative history queries against the OpenSky Trino
// endpoint. It handles the token exchange, statement submission, page
// polling and the local parquet result cache.
//
// A Client is safe for concurrent use.
type Client struct {
	// AuthURL, StatementURL and QueryURL default to the public OpenSky
	// endpoints and are overridable for tests.
	AuthURL      string
	StatementURL string
	QueryURL     string

	// Cache holds query results as parquet files. When nil, every call
	// goes to the network.
	Cache *cache.Cache

	httpClient *http.Client
	cfg        *config.Config
	logger     *slog.Logger

	mu    sync.Mutex
	token *tokenInfo
}

// Option configures a Client.
type Option func(*Client)

// WithCache attaches a result cache.
func WithCache(c *cache.Cache) Option {
	return func(cl *Client) { cl.Cache = c }
}

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// WithBaseURL points the statement and cancel endpoints at a different
// engine, keeping the /v1 path layout.
func WithBaseURL(base string) Option {
	return func(cl *Client) {
		base = strings.TrimRight(base, "/")
		cl.StatementURL = base + "/v1/statement"
		cl.QueryURL = base + "/v1/query"
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(cl *Client) { cl.httpClient = h }
}

// New builds a client from stored credentials.
func New(cfg *config.Config, opts ...Option) *Client {
	c := &Client{
		AuthURL:    defaultAuthURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		cfg:        cfg,
		logger:     slog.Default(),
	}
	WithBaseURL(defaultBaseURL)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HistoryOptions tunes a single history call.
type HistoryOptions struct {
	// NoCache evicts any stored entry and forces a fresh execution.
	NoCache bool

	// Observe receives an execution snapshot for every result page,
	// and a single CACHED snapshot on a cache hit.
	Observe func(QueryStatus)
}

// History runs a state-vector history query. Results are served from
// the parquet cache when an entry for the same parameters exists;
// fresh results are stored back on the way out.
func (c *Client) History(ctx context.Context, p opensky.QueryParams, opts HistoryOptions) (*frame.Frame, error) {
	if c.Cache != nil {
		if opts.NoCache {
			if err := c.Cache.Remove(p); err != nil {
				c.logger.Warn("evict cache entry", "error", err)
			}
		} else if f, ok := c.Cache.Get(p, 0); ok {
			c.logger.Debug("cache hit", "path", c.Cache.Path(p), "rows", f.NumRows())
			if opts.Observe != nil {
				opts.Observe(cachedStatus(f.NumRows()))
			}
			return f, nil
		}
	}

	f, err := c.run(ctx, query.History(p), opts.Observe)
	if err != nil {
		return nil, err
	}
	if c.Cache != nil && !f.IsEmpty() {
		if err := c.Cache.Put(p, f); err != nil {
			c.logger.Warn("store cache entry", "error", err)
		}
	}
	return f, nil
}

// FlightList runs a flight-table query. Flight lists are not cached:
// the flights table is continuously backfilled, so identical
// parameters legitimately return different rows across days.
func (c *Client) FlightList(ctx context.Context, p opensky.QueryParams, opts HistoryOptions) (*frame.Frame, error) {
	return c.run(ctx, query.FlightList(p), opts.Observe)
}

// RawData runs an unprojected query against one of the raw tables.
func (c *Client) RawData(ctx context.Context, table opensky.RawTable, p opensky.QueryParams, opts HistoryOptions) (*frame.Frame, error) {
	return c.run(ctx, query.RawData(table, p), opts.Observe)
}

// Execute runs an arbitrary SQL statement and assembles the result.
func (c *Client) Execute(ctx context.Context, sql string) (*frame.Frame, error) {
	return c.run(ctx, sql, nil)
}

// Cancel asks the engine to abort a running query.
func (c *Client) Cancel(ctx context.Context, queryID string) error {
	token, err := c.getToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.QueryURL+"/"+queryID, nil)
	if err != nil {
		return opensky.Wrap(opensky.KindTransport, "build cancel request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Trino-User", c.trinoUser())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return opensky.Wrap(opensky.KindTransport, "cancel query", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return opensky.Errorf(opensky.KindQuery, "cancel query %s: engine returned %s", queryID, resp.Status)
	}
	c.logger.Info("query cancelled", "id", queryID)
	return nil
}

// run submits sql, polls every next page and assembles the rows into a
// frame. observe, when non-nil, sees a snapshot per page.
func (c *Client) run(ctx context.Context, sql string, observe func(QueryStatus)) (*frame.Frame, error) {
	token, err := c.getToken(ctx)
	if err != nil {
		return nil, err
	}

	stmt, err := c.submit(ctx, sql, token)
	if err != nil {
		return nil, err
	}

	var (
		queryID string
		cols    []columnDef
		rows    [][]any
	)

	limiter := rate.NewLimiter(rate.Every(pollInterval), 1)
	limiter.Allow() // consume the burst token so every page fetch is paced

	for {
		if stmt.Error != nil {
			return nil, opensky.Errorf(opensky.KindQuery, "query failed: %s: %s",
				stmt.Error.ErrorName, stmt.Error.Message)
		}
		if queryID == "" {
			queryID = stmt.ID
		}
		if cols == nil && len(stmt.Columns) > 0 {
			cols = stmt.Columns
		}
		rows = append(rows, stmt.Data...)

		st := statusFrom(stmt, queryID, len(rows))
		if observe != nil {
			observe(st)
		}
		c.logger.Debug("statement page", "id", queryID, "state", st.State,
			"progress", st.Progress, "rows", len(rows))

		if stmt.NextURI == "" {
			break
		}
		if err := limiter.Wait(ctx); err != nil {
			return nil, opensky.Wrap(opensky.KindCancelled, "query interrupted", err)
		}
		if stmt, err = c.fetch(ctx, stmt.NextURI, token); err != nil {
			return nil, err
		}
	}

	descs := make([]frame.ColumnDesc, len(cols))
	for i, col := range cols {
		descs[i] = frame.ColumnDesc{Name: col.Name, EngineType: col.Type}
	}
	return frame.Assemble(descs, rows)
}

func (c *Client) submit(ctx context.Context, sql, token string) (*statementResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.StatementURL, strings.NewReader(sql))
	if err != nil {
		return nil, opensky.Wrap(opensky.KindTransport, "build statement request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Trino-User", c.trinoUser())
	req.Header.Set("X-Trino-Source", sourceName)
	req.Header.Set("X-Trino-Catalog", catalogName)
	req.Header.Set("X-Trino-Schema", schemaName)

	return c.roundTrip(req, "submit statement")
}

func (c *Client) fetch(ctx context.Context, nextURI, token string) (*statementResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, nextURI, nil)
	if err != nil {
		return nil, opensky.Wrap(opensky.KindTransport, "build page request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Trino-User", c.trinoUser())

	return c.roundTrip(req, "fetch result page")
}

func (c *Client) roundTrip(req *http.Request, what string) (*statementResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, opensky.Wrap(opensky.KindCancelled, what+" interrupted", err)
		}
		return nil, opensky.Wrap(opensky.KindTransport, what, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, opensky.Errorf(opensky.KindQuery, "%s: engine returned %s", what, resp.Status)
	}
	return decodeStatement(resp.Body)
}

func (c *Client) trinoUser() string {
	if c.cfg.Username != "" {
		return c.cfg.Username
	}
	return defaultUser
}

// getToken returns a bearer token, exchanging credentials when no
// token is held or the held one is within a minute of expiry. The
// exchange retries transport failures up to three attempts with a
// linearly growing delay; rejected credentials fail immediately.
func (c *Client) getToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if c.token != nil && now.Add(tokenMargin).Before(c.token.expiry) {
		return c.token.value, nil
	}

	username, err := c.cfg.RequireUsername()
	if err != nil {
		return "", err
	}
	password, err := c.cfg.RequirePassword()
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("client_id", c.clientID())
	form.Set("grant_type", "password")
	form.Set("username", username)
	form.Set("password", password)
	if c.cfg.ClientSecret != "" {
		form.Set("client_secret", c.cfg.ClientSecret)
	}
	body := form.Encode()

	var tok tokenResponse
	err = retry.Do(ctx, retry.WithMaxRetries(tokenRetries, linearBackoff(tokenRetryStep)), func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.AuthURL, strings.NewReader(body))
		if err != nil {
			return opensky.Wrap(opensky.KindTransport, "build token request", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Warn("token exchange failed, retrying", "error", err)
			return retry.RetryableError(opensky.Wrap(opensky.KindTransport, "token exchange", err))
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
			return opensky.Errorf(opensky.KindAuth,
				"credentials rejected for user %q, check `opensky config show`", username)
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return opensky.Errorf(opensky.KindAuth, "token endpoint returned %s", resp.Status)
		}

		if err := decodeToken(resp, &tok); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", opensky.E(opensky.KindAuth, "token endpoint returned no access token")
	}

	c.token = &tokenInfo{
		value:  tok.AccessToken,
		expiry: now.Add(time.Duration(tok.ExpiresIn) * time.Second),
	}
	c.logger.Debug("token acquired", "expires_in", tok.ExpiresIn)
	return c.token.value, nil
}

func (c *Client) clientID() string {
	if c.cfg.ClientID != "" {
		return c.cfg.ClientID
	}
	return defaultClientID
}

func decodeToken(resp *http.Response, tok *tokenResponse) error {
	if err := json.NewDecoder(resp.Body).Decode(tok); err != nil {
		return opensky.Wrap(opensky.KindParse, "decode token response", err)
	}
	return nil
}
