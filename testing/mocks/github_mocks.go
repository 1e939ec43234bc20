package mocks

import (
	"context"

	ghpkg "github.com/sgaunet/auto-merger/pkg/github"
	"github.com/sgaunet/auto-merger/pkg/policy"
)

// GitHubAPIClient is a mock implementation of github.APIClient with call tracking.
type GitHubAPIClient struct {
	recorder

	// Configurable responses
	Login                 string
	AuthenticateError     error
	PullRequests          map[string][]policy.RawRequest
	ListError             error
	MergePullRequestError error
}

// NewGitHubAPIClient creates a new mock GitHub API client.
func NewGitHubAPIClient() *GitHubAPIClient {
	return &GitHubAPIClient{
		Login:        "octocat",
		PullRequests: make(map[string][]policy.RawRequest),
	}
}

// Authenticate implements github.APIClient.
func (m *GitHubAPIClient) Authenticate(_ context.Context) (string, error) {
	m.trackCall("Authenticate", map[string]any{})
	if m.AuthenticateError != nil {
		return "", m.AuthenticateError
	}
	return m.Login, nil
}

// ListOpenPullRequests implements github.APIClient.
func (m *GitHubAPIClient) ListOpenPullRequests(_ context.Context, repoKey string) ([]policy.RawRequest, error) {
	m.trackCall("ListOpenPullRequests", map[string]any{"repoKey": repoKey})
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.PullRequests[repoKey], nil
}

// MergePullRequest implements github.APIClient.
func (m *GitHubAPIClient) MergePullRequest(_ context.Context, repoKey string, number int, method string) error {
	m.trackCall("MergePullRequest", map[string]any{
		"repoKey": repoKey,
		"number":  number,
		"method":  method,
	})
	return m.MergePullRequestError
}

var _ ghpkg.APIClient = (*GitHubAPIClient)(nil)
