package mocks

import (
	"context"

	"github.com/sgaunet/auto-merger/pkg/gitlab"
	"github.com/sgaunet/auto-merger/pkg/policy"
)

// GitLabAPIClient is a mock implementation of gitlab.APIClient with call tracking.
type GitLabAPIClient struct {
	recorder

	// Configurable responses
	Username               string
	AuthenticateError      error
	MergeRequests          map[string][]policy.RawRequest
	ListError              error
	MergeMergeRequestError error
}

// NewGitLabAPIClient creates a new mock GitLab API client.
func NewGitLabAPIClient() *GitLabAPIClient {
	return &GitLabAPIClient{
		Username:      "root",
		MergeRequests: make(map[string][]policy.RawRequest),
	}
}

// Authenticate implements gitlab.APIClient.
func (m *GitLabAPIClient) Authenticate(_ context.Context) (string, error) {
	m.trackCall("Authenticate", map[string]any{})
	if m.AuthenticateError != nil {
		return "", m.AuthenticateError
	}
	return m.Username, nil
}

// ListOpenMergeRequests implements gitlab.APIClient.
func (m *GitLabAPIClient) ListOpenMergeRequests(_ context.Context, projectPath string) ([]policy.RawRequest, error) {
	m.trackCall("ListOpenMergeRequests", map[string]any{"projectPath": projectPath})
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.MergeRequests[projectPath], nil
}

// MergeMergeRequest implements gitlab.APIClient.
func (m *GitLabAPIClient) MergeMergeRequest(_ context.Context, projectPath string, iid int, squash bool) error {
	m.trackCall("MergeMergeRequest", map[string]any{
		"projectPath": projectPath,
		"iid":         iid,
		"squash":      squash,
	})
	return m.MergeMergeRequestError
}

var _ gitlab.APIClient = (*GitLabAPIClient)(nil)
