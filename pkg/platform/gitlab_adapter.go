package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/sgaunet/auto-merger/internal/logger"
	"github.com/sgaunet/auto-merger/internal/urlutil"
	"github.com/sgaunet/auto-merger/pkg/config"
	"github.com/sgaunet/auto-merger/pkg/gitlab"
	"github.com/sgaunet/auto-merger/pkg/policy"
	"github.com/sgaunet/bullets"
)

// GitLabAdapter wraps a GitLab client to implement the [Source] interface.
type GitLabAdapter struct {
	client  gitlab.APIClient
	baseURL string
	squash  bool
	log     *bullets.Logger
}

// NewGitLabAdapter creates a new GitLab adapter for the namespace cfg.
func NewGitLabAdapter(client gitlab.APIClient, cfg *config.NamespaceConfig, log *bullets.Logger) *GitLabAdapter {
	if log == nil {
		log = logger.NoLogger()
	}
	baseURL := cfg.URL
	if baseURL == "" {
		baseURL = config.DefaultGitLabURL
	}
	return &GitLabAdapter{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		squash:  cfg.MergeMethod == "squash",
		log:     log,
	}
}

// Name implements Source.
func (a *GitLabAdapter) Name() string { return "GitLab" }

// Noun implements Source.
func (a *GitLabAdapter) Noun() string { return "merge request" }

// Authenticate implements Source.
func (a *GitLabAdapter) Authenticate(ctx context.Context) error {
	user, err := a.client.Authenticate(ctx)
	if err != nil {
		return fmt.Errorf("GitLab authentication failed: %w", err)
	}
	a.log.Debug("Using GitLab account " + user)
	return nil
}

// ListOpenRequests implements Source.
func (a *GitLabAdapter) ListOpenRequests(ctx context.Context, repoKey string) ([]policy.RawRequest, error) {
	raws, err := a.client.ListOpenMergeRequests(ctx, repoKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list GitLab merge requests: %w", err)
	}
	return raws, nil
}

// Merge implements Source.
func (a *GitLabAdapter) Merge(ctx context.Context, repoKey string, id int) error {
	if err := a.client.MergeMergeRequest(ctx, repoKey, id, a.squash); err != nil {
		return fmt.Errorf("failed to merge GitLab merge request: %w", err)
	}
	return nil
}

// WebURL implements Source.
func (a *GitLabAdapter) WebURL() string { return a.baseURL }

// RequestURL implements Source.
func (a *GitLabAdapter) RequestURL(repoKey string, id int) string {
	return fmt.Sprintf("%s/-/merge_requests/%d", urlutil.JoinURL(a.baseURL, repoKey), id)
}

// CloneURL implements Source.
func (a *GitLabAdapter) CloneURL(repoKey string) string {
	return urlutil.JoinURL(a.baseURL, repoKey) + ".git"
}
