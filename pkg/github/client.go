// Package github lists and merges pull requests through the GitHub REST API.
package github

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	"github.com/google/go-github/v69/github"
	"github.com/gregjones/httpcache"
	"github.com/sgaunet/auto-merger/internal/logger"
	"github.com/sgaunet/auto-merger/internal/security"
	"github.com/sgaunet/bullets"
	"golang.org/x/oauth2"
)

// Environment variables holding the token, in lookup order.
const (
	TokenEnv         = "GH_TOKEN"
	FallbackTokenEnv = "GITHUB_TOKEN"
)

const perPage = 100

// Client wraps the go-github client.
type Client struct {
	client *github.Client
	log    *bullets.Logger
}

// NewClient creates a client authenticated with the token from GH_TOKEN or
// GITHUB_TOKEN. An empty apiURL targets github.com; otherwise it is the API
// root of a GitHub Enterprise server.
func NewClient(apiURL string) (*Client, error) {
	token, _ := security.TokenFromEnv(TokenEnv, FallbackTokenEnv)
	if token.IsEmpty() {
		return nil, errTokenRequired
	}
	return NewClientWithToken(token, apiURL)
}

// NewClientWithToken creates a client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. oauth2 (token authentication)
//  3. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
func NewClientWithToken(token security.SecureToken, apiURL string) (*Client, error) {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	authTransport := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token.Value()}),
		Base:   cacheTransport,
	}
	client := github.NewClient(github_ratelimit.NewClient(authTransport))

	if apiURL != "" {
		enterprise, err := client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure GitHub Enterprise URL: %w", err)
		}
		client = enterprise
	}

	return &Client{client: client, log: logger.NoLogger()}, nil
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing against an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := github.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{client: client, log: logger.NoLogger()}, nil
}

// SetLogger sets the logger for the GitHub client.
func (c *Client) SetLogger(logger *bullets.Logger) {
	c.log = logger
}
