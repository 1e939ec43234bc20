// Package platform presents GitHub and GitLab behind a single Source interface
// used by the checker and merger commands.
package platform

import (
	"context"

	"github.com/sgaunet/auto-merger/pkg/evaluate"
	"github.com/sgaunet/auto-merger/pkg/policy"
)

// Source is one code hosting platform configured for a namespace.
type Source interface {
	// Name returns "GitHub" or "GitLab".
	Name() string

	// Noun names a request on the platform: "pull request" or "merge request".
	Noun() string

	// Authenticate verifies the platform token.
	Authenticate(ctx context.Context) error

	// ListOpenRequests returns the open requests of a repository.
	ListOpenRequests(ctx context.Context, repoKey string) ([]policy.RawRequest, error)

	// Merge merges request id of a repository.
	Merge(ctx context.Context, repoKey string, id int) error

	// WebURL returns the web root of the platform.
	WebURL() string

	// RequestURL returns the web URL of a request.
	RequestURL(repoKey string, id int) string

	// CloneURL returns the HTTPS clone URL of a repository.
	CloneURL(repoKey string) string
}

// Fetcher adapts a Source to evaluate.Fetcher.
func Fetcher(s Source) evaluate.Fetcher {
	return evaluate.FetcherFunc(s.ListOpenRequests)
}
