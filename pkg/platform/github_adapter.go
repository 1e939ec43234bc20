package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/sgaunet/auto-merger/internal/logger"
	"github.com/sgaunet/auto-merger/internal/urlutil"
	"github.com/sgaunet/auto-merger/pkg/config"
	ghclient "github.com/sgaunet/auto-merger/pkg/github"
	"github.com/sgaunet/auto-merger/pkg/policy"
	"github.com/sgaunet/bullets"
)

const (
	defaultGitHubWebURL = "https://github.com"
	enterpriseAPISuffix = "/api/v3"
)

// GitHubAdapter wraps a GitHub client to implement the [Source] interface.
type GitHubAdapter struct {
	client      ghclient.APIClient
	webURL      string
	mergeMethod string
	log         *bullets.Logger
}

// NewGitHubAdapter creates a new GitHub adapter for the namespace cfg.
func NewGitHubAdapter(client ghclient.APIClient, cfg *config.NamespaceConfig, log *bullets.Logger) *GitHubAdapter {
	if log == nil {
		log = logger.NoLogger()
	}
	method := cfg.MergeMethod
	if method == "" {
		method = config.DefaultGitHubMergeMethod
	}
	return &GitHubAdapter{
		client:      client,
		webURL:      gitHubWebURL(cfg.URL),
		mergeMethod: method,
		log:         log,
	}
}

// gitHubWebURL derives the web root from an API URL. An empty URL is github.com.
func gitHubWebURL(apiURL string) string {
	if apiURL == "" {
		return defaultGitHubWebURL
	}
	u := strings.TrimSuffix(apiURL, "/")
	return strings.TrimSuffix(u, enterpriseAPISuffix)
}

// Name implements Source.
func (a *GitHubAdapter) Name() string { return "GitHub" }

// Noun implements Source.
func (a *GitHubAdapter) Noun() string { return "pull request" }

// Authenticate implements Source.
func (a *GitHubAdapter) Authenticate(ctx context.Context) error {
	login, err := a.client.Authenticate(ctx)
	if err != nil {
		return fmt.Errorf("GitHub authentication failed: %w", err)
	}
	a.log.Debug("Using GitHub account " + login)
	return nil
}

// ListOpenRequests implements Source.
func (a *GitHubAdapter) ListOpenRequests(ctx context.Context, repoKey string) ([]policy.RawRequest, error) {
	raws, err := a.client.ListOpenPullRequests(ctx, repoKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list GitHub pull requests: %w", err)
	}
	return raws, nil
}

// Merge implements Source.
func (a *GitHubAdapter) Merge(ctx context.Context, repoKey string, id int) error {
	if err := a.client.MergePullRequest(ctx, repoKey, id, a.mergeMethod); err != nil {
		return fmt.Errorf("failed to merge GitHub pull request: %w", err)
	}
	return nil
}

// WebURL implements Source.
func (a *GitHubAdapter) WebURL() string { return a.webURL }

// RequestURL implements Source.
func (a *GitHubAdapter) RequestURL(repoKey string, id int) string {
	return fmt.Sprintf("%s/pull/%d", urlutil.JoinURL(a.webURL, repoKey), id)
}

// CloneURL implements Source.
func (a *GitHubAdapter) CloneURL(repoKey string) string {
	return urlutil.JoinURL(a.webURL, repoKey) + ".git"
}
