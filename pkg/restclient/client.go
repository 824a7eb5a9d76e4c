// Package restclient fetches XML responses from an ATOM-style REST
// management API and decodes them with restdata.
package restclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/restdata/restdata/pkg/logging"
	"github.com/restdata/restdata/pkg/restdata"
)

// ErrNotFound is matched by errors for 404 responses.
var ErrNotFound = errors.New("not found")

// Client is an HTTP client for a REST management endpoint. Responses are
// read in full and decoded after the request completes.
type Client struct {
	baseURL    string
	httpClient *http.Client
	decoder    *restdata.Decoder
	logger     *slog.Logger

	username string
	password string
	token    string // session key or auth token
	basic    bool

	owner string
	app   string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithToken authenticates requests with a session key or token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithCredentials sets the username and password used by Login.
func WithCredentials(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithBasicAuth sends the credentials as HTTP basic auth on every request
// instead of exchanging them for a session key.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
		c.basic = true
	}
}

// WithNamespace scopes relative paths to an owner and app. An empty value
// is the wildcard "-".
func WithNamespace(owner, app string) Option {
	return func(c *Client) {
		c.owner = owner
		c.app = app
	}
}

// WithDecoder sets the decoder used for responses.
func WithDecoder(d *restdata.Decoder) Option {
	return func(c *Client) {
		if d != nil {
			c.decoder = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.Component(logger, "restclient")
	}
}

// New creates a client for the service at baseURL (scheme://host:port).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		decoder: restdata.NewDecoder(),
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the current session key or token.
func (c *Client) Token() string {
	return c.token
}

// Login exchanges the configured credentials for a session key, which is
// sent with every later request.
func (c *Client) Login(ctx context.Context) error {
	if c.username == "" {
		return errors.New("login requires a username")
	}
	form := url.Values{"username": {c.username}, "password": {c.password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/services/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(req)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	v, err := c.decoder.Load(body, "sessionKey")
	if err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	key := v.Record().Text("sessionKey")
	if key == "" {
		return errors.New("login response has no session key")
	}
	c.token = key
	c.basic = false
	return nil
}

// Fetch performs a GET and returns the response body text.
func (c *Client) Fetch(ctx context.Context, path string, query url.Values) (string, error) {
	u := c.baseURL + c.abspath(path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	return c.do(req)
}

// Get fetches path and decodes the elements selected by match.
func (c *Client) Get(ctx context.Context, path, match string, query url.Values) (restdata.Value, error) {
	body, err := c.Fetch(ctx, path, query)
	if err != nil {
		return restdata.Value{}, err
	}
	return c.decoder.Load(body, match)
}

// Entities fetches a feed and returns the record of each entry, in feed
// order. Each record holds the entry's fields (title, content, ...).
func (c *Client) Entities(ctx context.Context, path string, query url.Values) ([]*restdata.Record, error) {
	body, err := c.Fetch(ctx, path, query)
	if err != nil {
		return nil, err
	}
	values, err := c.decoder.LoadAll(body, "entry")
	if err != nil {
		return nil, err
	}
	entries := make([]*restdata.Record, 0, len(values))
	for _, v := range values {
		entry, err := v.Record().Field("entry")
		if err != nil {
			return nil, err
		}
		r := entry.Record()
		if r == nil {
			r = restdata.NewRecord()
		}
		entries = append(entries, r)
	}
	return entries, nil
}

// Info returns the server info settings.
func (c *Client) Info(ctx context.Context) (*restdata.Record, error) {
	return c.content(ctx, "/services/server/info")
}

// Settings returns the server settings.
func (c *Client) Settings(ctx context.Context) (*restdata.Record, error) {
	return c.content(ctx, "/services/server/settings")
}

// content returns the content mapping of the first entry at path.
func (c *Client) content(ctx context.Context, path string) (*restdata.Record, error) {
	entries, err := c.Entities(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	v, err := entries[0].Field("content")
	if err != nil {
		return nil, err
	}
	if v.Kind() != restdata.KindMapping {
		return nil, fmt.Errorf("%s: content is a %s, not a mapping", path, v.Kind())
	}
	return v.Record(), nil
}

// abspath resolves a path relative to the client's namespace.
func (c *Client) abspath(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	if c.owner == "" && c.app == "" {
		return "/services/" + path
	}
	owner, app := c.owner, c.app
	if owner == "" {
		owner = "-"
	}
	if app == "" {
		app = "-"
	}
	return "/servicesNS/" + url.PathEscape(owner) + "/" + url.PathEscape(app) + "/" + path
}

func (c *Client) do(req *http.Request) (string, error) {
	switch {
	case c.basic:
		req.SetBasicAuth(c.username, c.password)
	case c.token != "":
		req.Header.Set("Authorization", "Splunk "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", req.Method, "url", req.URL.Redacted(), "error", err)
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	c.logger.Debug("request complete",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", c.parseError(resp, string(body))
	}
	return string(body), nil
}
