package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	"github.com/google/go-github/v68/github"
	"github.com/gregjones/httpcache"
	"golang.org/x/oauth2"
)

const (
	// DefaultBaseURL is the default GitHub API base URL
	DefaultBaseURL = "https://api.github.com"

	// TokenEnv is the environment variable for the GitHub token
	TokenEnv = "GITHUB_TOKEN"

	// AltTokenEnv is the prtrack-specific environment variable for the GitHub token
	AltTokenEnv = "PRTRACK_GITHUB_TOKEN"

	// APIBaseEnv overrides the API base URL (used by integration tests)
	APIBaseEnv = "PRTRACK_API_URL"

	// DefaultTimeout is the default HTTP timeout
	DefaultTimeout = 30 * time.Second
)

// ClientOption configures a Client
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL for the GitHub API
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets a custom HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client, bypassing the default transport
// stack. Intended for tests (VCR recorder, httptest servers).
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// Client is a GitHub API client for the tracker's operations.
//
// The underlying go-github client is built lazily on first use with the
// following transport stack, outermost first:
//   - oauth2 bearer auth (static token source)
//   - go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//   - httpcache (in-memory conditional request caching)
type Client struct {
	token        string
	baseURL      string
	httpClient   *http.Client
	timeout      time.Duration
	githubClient *github.Client
}

// NewClient creates a new GitHub API client with the given token
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		token:   token,
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NewClientFromEnv creates a new client using the token from environment
// variables. PRTRACK_API_URL, when set, overrides the API base URL.
func NewClientFromEnv(opts ...ClientOption) (*Client, error) {
	token := os.Getenv(TokenEnv)
	if token == "" {
		token = os.Getenv(AltTokenEnv)
	}
	if token == "" {
		return nil, fmt.Errorf("%s or %s environment variable is required", TokenEnv, AltTokenEnv)
	}

	if base := os.Getenv(APIBaseEnv); base != "" {
		opts = append([]ClientOption{WithBaseURL(base)}, opts...)
	}

	return NewClient(token, opts...), nil
}

// GitHubClient returns the underlying go-github client (lazy-loaded)
func (c *Client) GitHubClient() *github.Client {
	if c.githubClient == nil {
		httpClient := c.httpClient
		if httpClient == nil {
			cacheTransport := httpcache.NewMemoryCacheTransport()
			rateLimited := github_ratelimit.NewClient(cacheTransport)
			rateLimited.Timeout = c.timeout

			if c.token != "" {
				ctx := context.WithValue(context.Background(), oauth2.HTTPClient, rateLimited)
				ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.token})
				httpClient = oauth2.NewClient(ctx, ts)
				httpClient.Timeout = c.timeout
			} else {
				// Anonymous access (public endpoints like releases)
				httpClient = rateLimited
			}
		}
		c.githubClient = github.NewClient(httpClient)

		// Set custom base URL if configured (for testing)
		if c.baseURL != DefaultBaseURL && c.baseURL != "" {
			baseURL := c.baseURL
			// go-github requires a trailing slash
			if baseURL[len(baseURL)-1] != '/' {
				baseURL += "/"
			}
			if parsedURL, err := url.Parse(baseURL); err == nil {
				c.githubClient.BaseURL = parsedURL
			}
		}
	}
	return c.githubClient
}
