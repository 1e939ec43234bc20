package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v69/github"
	"github.com/sgaunet/auto-merger/internal/urlutil"
	"github.com/sgaunet/auto-merger/pkg/policy"
)

// Authenticate returns the login of the token owner.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	user, _, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to authenticate to GitHub: %w", err)
	}
	c.log.Debug("Authenticated to GitHub as " + user.GetLogin())
	return user.GetLogin(), nil
}

// ListOpenPullRequests returns the open pull requests of repoKey ("owner/name")
// with their review events. It follows pagination until the last page.
func (c *Client) ListOpenPullRequests(ctx context.Context, repoKey string) ([]policy.RawRequest, error) {
	owner, repo, err := splitRepo(repoKey)
	if err != nil {
		return nil, err
	}

	opts := &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var out []policy.RawRequest
	for {
		prs, resp, err := c.client.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests for %s (page %d): %w", repoKey, opts.Page, err)
		}

		for _, pr := range prs {
			reviews, err := c.listReviews(ctx, owner, repo, pr.GetNumber())
			if err != nil {
				return nil, err
			}
			out = append(out, mapPullRequest(pr, reviews))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	c.log.Debug(fmt.Sprintf("Pull requests retrieved for %s, count: %d", repoKey, len(out)))
	return out, nil
}

func (c *Client) listReviews(ctx context.Context, owner, repo string, number int) ([]*github.PullRequestReview, error) {
	opts := &github.ListOptions{PerPage: perPage}

	var all []*github.PullRequestReview
	for {
		reviews, resp, err := c.client.PullRequests.ListReviews(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list reviews for %s/%s#%d: %w", owner, repo, number, err)
		}
		all = append(all, reviews...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// MergePullRequest merges pull request number of repoKey with method.
func (c *Client) MergePullRequest(ctx context.Context, repoKey string, number int, method string) error {
	owner, repo, err := splitRepo(repoKey)
	if err != nil {
		return err
	}

	c.log.Debug(fmt.Sprintf("Merging %s#%d with method %s", repoKey, number, method))
	result, _, err := c.client.PullRequests.Merge(ctx, owner, repo, number, "", &github.PullRequestOptions{
		MergeMethod: method,
	})
	if err != nil {
		return fmt.Errorf("failed to merge pull request %s#%d: %w", repoKey, number, err)
	}
	if !result.GetMerged() {
		return fmt.Errorf("%w: %s#%d: %s", errNotMerged, repoKey, number, result.GetMessage())
	}
	return nil
}

// mapPullRequest converts a go-github pull request and its reviews to the
// payload shape of the engine. Number and title are passed through as
// pointers so that missing fields stay detectable.
func mapPullRequest(pr *github.PullRequest, reviews []*github.PullRequestReview) policy.RawRequest {
	raw := policy.RawRequest{
		Number:  pr.Number,
		Title:   pr.Title,
		IsDraft: policy.Flag(pr.GetDraft()),
		URL:     pr.GetHTMLURL(),
	}
	for _, l := range pr.Labels {
		raw.Labels = append(raw.Labels, policy.RawLabel{Name: l.GetName()})
	}
	for _, r := range reviews {
		raw.Reviews = append(raw.Reviews, policy.RawReview{State: r.GetState()})
	}
	if pr.CreatedAt != nil {
		raw.CreatedAt = policy.FormatTimestamp(pr.GetCreatedAt().Time)
	}
	return raw
}

func splitRepo(repoKey string) (owner, repo string, err error) {
	owner, repo, ok := urlutil.SplitRepoKey(repoKey)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", errInvalidRepoKey, repoKey)
	}
	return owner, repo, nil
}
