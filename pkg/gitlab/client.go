// Package gitlab lists and accepts merge requests through the GitLab REST API.
package gitlab

import (
	"context"
	"fmt"

	"github.com/sgaunet/auto-merger/internal/logger"
	"github.com/sgaunet/auto-merger/internal/security"
	"github.com/sgaunet/auto-merger/pkg/policy"
	"github.com/sgaunet/bullets"
	"gitlab.com/gitlab-org/api/client-go"
)

// TokenEnv holds the GitLab token.
const TokenEnv = "GITLAB_TOKEN"

// Client wraps the GitLab API client.
type Client struct {
	client *gitlab.Client
	log    *bullets.Logger
}

// NewClient creates a client for the GitLab instance at baseURL using the
// token from GITLAB_TOKEN.
func NewClient(baseURL string) (*Client, error) {
	token, _ := security.TokenFromEnv(TokenEnv)
	if token.IsEmpty() {
		return nil, errTokenRequired
	}
	return NewClientWithToken(token, baseURL)
}

// NewClientWithToken creates a client for the GitLab instance at baseURL.
func NewClientWithToken(token security.SecureToken, baseURL string) (*Client, error) {
	var opts []gitlab.ClientOptionFunc
	if baseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(baseURL))
	}

	client, err := gitlab.NewClient(token.Value(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}

	return &Client{client: client, log: logger.NoLogger()}, nil
}

// SetLogger sets the logger for the GitLab client.
func (c *Client) SetLogger(logger *bullets.Logger) {
	c.log = logger
}

// Authenticate returns the username of the token owner.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	user, _, err := c.client.Users.CurrentUser(gitlab.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to authenticate to GitLab: %w", err)
	}
	c.log.Debug("Authenticated to GitLab as " + user.Username)
	return user.Username, nil
}

// ListOpenMergeRequests returns the opened merge requests of projectPath.
// Every approver of a merge request counts as one APPROVED review.
func (c *Client) ListOpenMergeRequests(ctx context.Context, projectPath string) ([]policy.RawRequest, error) {
	page := 1
	perPage := 100

	var out []policy.RawRequest
	for {
		mrs, resp, err := c.client.MergeRequests.ListProjectMergeRequests(
			projectPath,
			&gitlab.ListProjectMergeRequestsOptions{
				State: gitlab.Ptr("opened"),
				ListOptions: gitlab.ListOptions{
					Page:    page,
					PerPage: perPage,
				},
			},
			gitlab.WithContext(ctx),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to list merge requests for %s: %w", projectPath, err)
		}

		for _, mr := range mrs {
			approvals, err := c.countApprovals(ctx, projectPath, mr.IID)
			if err != nil {
				return nil, err
			}
			out = append(out, mapMergeRequest(mr, approvals))
		}

		if resp.NextPage == 0 {
			break
		}
		page = resp.NextPage
	}

	c.log.Debug(fmt.Sprintf("Merge requests retrieved for %s, count: %d", projectPath, len(out)))
	return out, nil
}

func (c *Client) countApprovals(ctx context.Context, projectPath string, iid int) (int, error) {
	approvals, _, err := c.client.MergeRequestApprovals.GetConfiguration(projectPath, iid, gitlab.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to get approvals for %s!%d: %w", projectPath, iid, err)
	}
	return len(approvals.ApprovedBy), nil
}

// MergeMergeRequest accepts merge request iid of projectPath.
func (c *Client) MergeMergeRequest(ctx context.Context, projectPath string, iid int, squash bool) error {
	c.log.Debug(fmt.Sprintf("Merging merge request %s!%d", projectPath, iid))

	mergeOptions := &gitlab.AcceptMergeRequestOptions{
		Squash: gitlab.Ptr(squash),
	}
	_, _, err := c.client.MergeRequests.AcceptMergeRequest(projectPath, iid, mergeOptions, gitlab.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to merge MR %s!%d: %w", projectPath, iid, err)
	}
	return nil
}

// mapMergeRequest converts a merge request to the payload shape of the engine.
func mapMergeRequest(mr *gitlab.BasicMergeRequest, approvals int) policy.RawRequest {
	iid := mr.IID
	title := mr.Title
	raw := policy.RawRequest{
		Number:  &iid,
		Title:   &title,
		IsDraft: policy.Flag(mr.Draft),
		URL:     mr.WebURL,
	}
	for _, name := range mr.Labels {
		raw.Labels = append(raw.Labels, policy.RawLabel{Name: name})
	}
	for range approvals {
		raw.Reviews = append(raw.Reviews, policy.RawReview{State: policy.ReviewApproved})
	}
	if mr.CreatedAt != nil {
		raw.CreatedAt = policy.FormatTimestamp(*mr.CreatedAt)
	}
	return raw
}
