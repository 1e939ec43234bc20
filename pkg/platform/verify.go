package platform

import (
	"context"
	"fmt"

	"github.com/sgaunet/auto-merger/internal/logger"
	"github.com/sgaunet/auto-merger/pkg/evaluate"
	"github.com/sgaunet/auto-merger/pkg/git"
	"github.com/sgaunet/auto-merger/pkg/policy"
	"github.com/sgaunet/bullets"
)

// RemoteProber checks that a git remote answers.
type RemoteProber interface {
	Probe(ctx context.Context, url string) (git.RemoteInfo, error)
}

// VerifyingFetcher probes the git remote of a repository before listing its
// requests. A failed probe fails the fetch.
type VerifyingFetcher struct {
	source Source
	prober RemoteProber
	log    *bullets.Logger
}

// NewVerifyingFetcher creates a fetcher that probes through prober.
func NewVerifyingFetcher(source Source, prober RemoteProber, log *bullets.Logger) *VerifyingFetcher {
	if log == nil {
		log = logger.NoLogger()
	}
	return &VerifyingFetcher{source: source, prober: prober, log: log}
}

// Fetch implements evaluate.Fetcher.
func (f *VerifyingFetcher) Fetch(ctx context.Context, repoKey string) ([]policy.RawRequest, error) {
	info, err := f.prober.Probe(ctx, f.source.CloneURL(repoKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteUnreachable, err)
	}
	f.log.Debug(fmt.Sprintf("%s: remote reachable, default branch %q", repoKey, info.DefaultBranch))
	return f.source.ListOpenRequests(ctx, repoKey)
}

var _ evaluate.Fetcher = (*VerifyingFetcher)(nil)
