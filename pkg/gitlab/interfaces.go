package gitlab

import (
	"context"

	"github.com/sgaunet/auto-merger/pkg/policy"
)

// APIClient defines the GitLab operations the platform adapter relies on.
type APIClient interface {
	// Authenticate verifies the token and returns the username it belongs to.
	Authenticate(ctx context.Context) (string, error)

	// ListOpenMergeRequests returns the opened merge requests of a project path
	// with one APPROVED review per approver.
	ListOpenMergeRequests(ctx context.Context, projectPath string) ([]policy.RawRequest, error)

	// MergeMergeRequest accepts merge request iid, squashing when squash is set.
	MergeMergeRequest(ctx context.Context, projectPath string, iid int, squash bool) error
}

var _ APIClient = (*Client)(nil)
