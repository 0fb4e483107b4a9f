// Package robinhood provides a client for the Robinhood API: the REST
// transport, the authentication lifecycle, and session persistence.
//
// Business payloads are deliberately surfaced as loosely typed maps; all
// typing and coercion happens in the models package so that the upstream
// API's inconsistent field types stay contained in one place.
package robinhood

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"robinhood-mcp/internal/common"
)

const (
	DefaultBaseURL   = "https://api.robinhood.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second

	// oauthClientID is the public identifier the official web client sends
	// with password-grant login requests.
	oauthClientID = "c82SH0WZOsabOXGP2sxqcj34FxkvfnWRZBKlBjFS"
)

// Credentials holds the account credentials loaded once at startup.
type Credentials struct {
	Username string
	Password string
	MFACode  string
	AllowMFA bool
}

// Client talks to the Robinhood API and owns the session lifecycle.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *common.Logger
	store      *SessionStore
	creds      Credentials

	// mu serializes EnsureSession and Logout so at most one authentication
	// attempt is in flight; concurrent callers wait for its outcome.
	mu          sync.Mutex
	state       SessionState
	deviceToken string

	sessionMu sync.RWMutex
	session   *SessionArtifact
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Robinhood client. The store may be a store with an
// empty path when session persistence is disabled.
func NewClient(creds Credentials, store *SessionStore, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		creds:   creds,
		store:   store,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
		state:   StateNoSession,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.store == nil {
		c.store = NewSessionStore("", c.logger)
	}

	return c
}

// StatusError represents a non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Body       string
	Endpoint   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("robinhood API error: %s (status: %d, endpoint: %s)", e.Body, e.StatusCode, e.Endpoint)
}

func (c *Client) setSession(artifact *SessionArtifact) {
	c.sessionMu.Lock()
	c.session = artifact
	c.sessionMu.Unlock()
}

func (c *Client) currentSession() *SessionArtifact {
	c.sessionMu.RLock()
	defer c.sessionMu.RUnlock()
	return c.session
}

// do performs a rate-limited request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, req *http.Request, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if s := c.currentSession(); s != nil && s.AccessToken != "" {
		tokenType := s.TokenType
		if tokenType == "" {
			tokenType = "Bearer"
		}
		req.Header.Set("Authorization", tokenType+" "+s.AccessToken)
	}

	c.logger.Debug().Str("method", req.Method).Str("url", req.URL.Path).Msg("Robinhood API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		return &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			Endpoint:   req.URL.Path,
		}
	}

	if out == nil {
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// get performs a GET against a path relative to the base URL.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(ctx, req, out)
}

// postForm performs a form-encoded POST against a path relative to the base URL.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(ctx, req, out)
}

// resultsList extracts the "results" array of objects from a paginated
// upstream envelope, dropping non-object entries.
func resultsList(raw map[string]any) []map[string]any {
	items, _ := raw["results"].([]any)
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// GetQuotes fetches quotes. A single symbol uses the per-symbol endpoint and
// yields a bare object; multiple symbols use the batch endpoint and yield a
// list. Callers normalize both shapes into a list.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) (any, error) {
	if len(symbols) == 1 {
		var out map[string]any
		if err := c.get(ctx, "/quotes/"+url.PathEscape(symbols[0])+"/", nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	}

	var out map[string]any
	query := url.Values{"symbols": {strings.Join(symbols, ",")}}
	if err := c.get(ctx, "/quotes/", query, &out); err != nil {
		return nil, err
	}
	return out["results"], nil
}

// GetHistoricals fetches historical bars for a symbol.
func (c *Client) GetHistoricals(ctx context.Context, symbol, interval, span, bounds string) ([]map[string]any, error) {
	var out map[string]any
	query := url.Values{
		"interval": {interval},
		"span":     {span},
		"bounds":   {bounds},
	}
	if err := c.get(ctx, "/marketdata/historicals/"+url.PathEscape(symbol)+"/", query, &out); err != nil {
		return nil, err
	}

	items, _ := out["historicals"].([]any)
	bars := make([]map[string]any, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			bars = append(bars, m)
		}
	}
	return bars, nil
}

// GetOptionChains fetches chain metadata (including expiration dates) for an
// equity symbol.
func (c *Client) GetOptionChains(ctx context.Context, symbol string) (map[string]any, error) {
	var out map[string]any
	query := url.Values{"equity_symbol": {symbol}}
	if err := c.get(ctx, "/options/chains/", query, &out); err != nil {
		return nil, err
	}

	results := resultsList(out)
	if len(results) == 0 {
		return map[string]any{}, nil
	}
	return results[0], nil
}

// FindOptionsByExpiration fetches tradable option instruments for a symbol
// and expiration date.
func (c *Client) FindOptionsByExpiration(ctx context.Context, symbol, expirationDate string) ([]map[string]any, error) {
	var out map[string]any
	query := url.Values{
		"chain_symbol":     {symbol},
		"expiration_dates": {expirationDate},
		"state":            {"active"},
	}
	if err := c.get(ctx, "/options/instruments/", query, &out); err != nil {
		return nil, err
	}
	return resultsList(out), nil
}

// GetAccountProfile fetches the primary account profile. Doubles as the
// session validity probe.
func (c *Client) GetAccountProfile(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.get(ctx, "/accounts/", nil, &out); err != nil {
		return nil, err
	}

	results := resultsList(out)
	if len(results) == 0 {
		return nil, fmt.Errorf("no account profile returned")
	}
	return results[0], nil
}

// GetOpenPositions fetches open (nonzero) stock positions.
func (c *Client) GetOpenPositions(ctx context.Context) ([]map[string]any, error) {
	var out map[string]any
	query := url.Values{"nonzero": {"true"}}
	if err := c.get(ctx, "/positions/", query, &out); err != nil {
		return nil, err
	}
	return resultsList(out), nil
}

// GetInstrumentByURL fetches an instrument record from the absolute URL
// embedded in a position payload.
func (c *Client) GetInstrumentByURL(ctx context.Context, instrumentURL string) (map[string]any, error) {
	if !strings.HasPrefix(instrumentURL, "http://") && !strings.HasPrefix(instrumentURL, "https://") {
		return nil, fmt.Errorf("invalid instrument URL %q", instrumentURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, instrumentURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var out map[string]any
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAllWatchlists fetches the user's watchlists.
func (c *Client) GetAllWatchlists(ctx context.Context) ([]map[string]any, error) {
	var out map[string]any
	if err := c.get(ctx, "/midlands/lists/default/", nil, &out); err != nil {
		return nil, err
	}
	return resultsList(out), nil
}

// GetNews fetches news for a symbol.
func (c *Client) GetNews(ctx context.Context, symbol string) ([]map[string]any, error) {
	var out map[string]any
	if err := c.get(ctx, "/midlands/news/"+url.PathEscape(symbol)+"/", nil, &out); err != nil {
		return nil, err
	}
	return resultsList(out), nil
}

// GetTopNews fetches general market news.
func (c *Client) GetTopNews(ctx context.Context) ([]map[string]any, error) {
	var out map[string]any
	if err := c.get(ctx, "/midlands/news/top/", nil, &out); err != nil {
		return nil, err
	}
	return resultsList(out), nil
}

// GetFundamentals fetches fundamentals for a symbol. The upstream sometimes
// returns a list and sometimes a bare object, so the raw value is returned
// for the service to disambiguate.
func (c *Client) GetFundamentals(ctx context.Context, symbol string) (any, error) {
	var out map[string]any
	query := url.Values{"symbols": {symbol}}
	if err := c.get(ctx, "/fundamentals/", query, &out); err != nil {
		return nil, err
	}

	if results, ok := out["results"]; ok {
		return results, nil
	}
	return out, nil
}

// GetEarnings fetches per-quarter earnings entries for a symbol. Entries may
// be null; they are preserved so the service can skip them explicitly.
func (c *Client) GetEarnings(ctx context.Context, symbol string) ([]any, error) {
	var out map[string]any
	query := url.Values{"symbol": {symbol}}
	if err := c.get(ctx, "/marketdata/earnings/", query, &out); err != nil {
		return nil, err
	}

	items, _ := out["results"].([]any)
	return items, nil
}
