package betaseries

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client.
type Option func(*Client)

// WithHost sets the API base URL.
func WithHost(host string) Option {
	return func(c *Client) {
		c.cfg.Host = strings.TrimRight(host, "/")
	}
}

// WithAPIVersion sets the value of the X-BetaSeries-Version header.
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		c.cfg.APIVersion = version
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.cfg.UserAgent = userAgent
	}
}

// WithToken sends the member token on every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.cfg.Token = token
	}
}

// WithTimeout sets the HTTP client timeout. Ignored when a custom HTTP client or
// transport is supplied.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.cfg.Timeout = timeout
		}
	}
}

// WithHTTPClient sends requests through the given HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTransport replaces the HTTP transport entirely.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRegistry resolves endpoints against r instead of DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(c *Client) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithBatchConcurrency limits how many calls Batch runs at once.
func WithBatchConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.batchConcurrency = n
		}
	}
}
