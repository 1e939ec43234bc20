package github

import (
	"context"

	"github.com/sgaunet/auto-merger/pkg/policy"
)

// APIClient defines the GitHub operations the platform adapter relies on.
// It allows mock implementations to replace the real client in tests.
type APIClient interface {
	// Authenticate verifies the token and returns the login it belongs to.
	Authenticate(ctx context.Context) (string, error)

	// ListOpenPullRequests returns every open pull request of repoKey with its reviews.
	ListOpenPullRequests(ctx context.Context, repoKey string) ([]policy.RawRequest, error)

	// MergePullRequest merges pull request number with method "merge", "squash" or "rebase".
	MergePullRequest(ctx context.Context, repoKey string, number int, method string) error
}

var _ APIClient = (*Client)(nil)
