package betaseries

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied by New
const (
	DefaultHost       = "https://api.betaseries.com"
	DefaultAPIVersion = "2.4"
	DefaultUserAgent  = "betaseries-go"
	DefaultTimeout    = 30 * time.Second
)

// Config holds the connection settings of a Client
type Config struct {
	Host       string
	APIKey     string
	APIVersion string
	UserAgent  string
	Token      string
	Timeout    time.Duration
}

// Client is a BetaSeries API client. Calls are safe for concurrent use;
// setters are not and must not race with in-flight calls.
type Client struct {
	cfg              Config
	registry         *Registry
	logger           zerolog.Logger
	httpClient       *http.Client
	transport        Transport
	batchConcurrency int

	mu      sync.Mutex
	session *session
}

// session is the transport and header set derived from the current config.
// It is built lazily and dropped by every setter.
type session struct {
	host      string
	transport Transport
	header    http.Header
}

// New creates a client for the given API key
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		cfg: Config{
			Host:       DefaultHost,
			APIKey:     apiKey,
			APIVersion: DefaultAPIVersion,
			UserAgent:  DefaultUserAgent,
			Timeout:    DefaultTimeout,
		},
		registry:         DefaultRegistry,
		logger:           zerolog.Nop(),
		batchConcurrency: DefaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig creates a client from a Config, keeping defaults for empty fields
func NewFromConfig(cfg Config, opts ...Option) *Client {
	base := []Option{WithToken(cfg.Token), WithTimeout(cfg.Timeout)}
	if cfg.Host != "" {
		base = append(base, WithHost(cfg.Host))
	}
	if cfg.APIVersion != "" {
		base = append(base, WithAPIVersion(cfg.APIVersion))
	}
	if cfg.UserAgent != "" {
		base = append(base, WithUserAgent(cfg.UserAgent))
	}
	return New(cfg.APIKey, append(base, opts...)...)
}

// Config returns a copy of the current settings
func (c *Client) Config() Config {
	return c.cfg
}

// Registry returns the endpoints the client resolves against
func (c *Client) Registry() *Registry {
	return c.registry
}

func (c *Client) Host() string       { return c.cfg.Host }
func (c *Client) APIKey() string     { return c.cfg.APIKey }
func (c *Client) APIVersion() string { return c.cfg.APIVersion }
func (c *Client) UserAgent() string  { return c.cfg.UserAgent }
func (c *Client) Token() string      { return c.cfg.Token }

// SetHost changes the API base URL
func (c *Client) SetHost(host string) {
	c.cfg.Host = strings.TrimRight(host, "/")
	c.resetSession()
}

// SetAPIKey changes the API key
func (c *Client) SetAPIKey(apiKey string) {
	c.cfg.APIKey = apiKey
	c.resetSession()
}

// SetAPIVersion changes the requested API version
func (c *Client) SetAPIVersion(version string) {
	c.cfg.APIVersion = version
	c.resetSession()
}

// SetUserAgent changes the user agent
func (c *Client) SetUserAgent(userAgent string) {
	c.cfg.UserAgent = userAgent
	c.resetSession()
}

// SetToken changes the member token. An empty token stops sending the header.
func (c *Client) SetToken(token string) {
	c.cfg.Token = token
	c.resetSession()
}

func (c *Client) resetSession() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

func (c *Client) currentSession() *session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		return c.session
	}

	t := c.transport
	switch {
	case t != nil:
	case c.httpClient != nil:
		t = &HTTPTransport{Client: c.httpClient}
	default:
		t = NewHTTPTransport(c.cfg.Timeout)
	}

	h := make(http.Header)
	h.Set("X-BetaSeries-Version", c.cfg.APIVersion)
	h.Set("X-BetaSeries-Key", c.cfg.APIKey)
	h.Set("User-Agent", c.cfg.UserAgent)
	h.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		h.Set("X-BetaSeries-Token", c.cfg.Token)
	}

	c.session = &session{host: c.cfg.Host, transport: t, header: h}
	return c.session
}

// Get calls a GET endpoint named "<category>/<action>"
func (c *Client) Get(ctx context.Context, endpoint string, params Params) (Result, error) {
	return c.Do(ctx, http.MethodGet, endpoint, params)
}

// Post calls a POST endpoint named "<category>/<action>"
func (c *Client) Post(ctx context.Context, endpoint string, params Params) (Result, error) {
	return c.Do(ctx, http.MethodPost, endpoint, params)
}

// Delete calls a DELETE endpoint named "<category>/<action>"
func (c *Client) Delete(ctx context.Context, endpoint string, params Params) (Result, error) {
	return c.Do(ctx, http.MethodDelete, endpoint, params)
}
