package evaluate

import (
	"context"
	"fmt"
	"time"

	"github.com/sgaunet/auto-merger/internal/security"
	"github.com/sgaunet/auto-merger/pkg/policy"
	"github.com/sgaunet/bullets"
	"golang.org/x/sync/errgroup"
)

// Fetcher lists the open requests of a repository.
type Fetcher interface {
	Fetch(ctx context.Context, repoKey string) ([]policy.RawRequest, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, repoKey string) ([]policy.RawRequest, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, repoKey string) ([]policy.RawRequest, error) {
	return f(ctx, repoKey)
}

// Options tunes a namespace scan.
type Options struct {
	// Workers bounds how many repositories are fetched at once. Values below 1 mean 1.
	Workers int
	// Now returns the evaluation time. Defaults to time.Now.
	Now func() time.Time
}

// Evaluator scans the repositories of one namespace against a policy.
type Evaluator struct {
	policy  policy.Policy
	workers int
	now     func() time.Time
	log     *bullets.Logger
}

// NewEvaluator creates an evaluator for p.
func NewEvaluator(p policy.Policy, opts Options) *Evaluator {
	e := &Evaluator{
		policy:  p,
		workers: max(1, opts.Workers),
		now:     opts.Now,
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// SetLogger sets the logger for the evaluator.
func (e *Evaluator) SetLogger(logger *bullets.Logger) {
	e.log = logger
}

// Policy returns the policy the evaluator applies.
func (e *Evaluator) Policy() policy.Policy {
	return e.policy
}

// EvaluateNamespace fetches and evaluates every repository in repoKeys.
//
// A repository whose fetch fails is marked failed and the others are still
// evaluated. Results keep the order of repoKeys whatever the worker count.
// Once ctx is done, repositories not yet started are marked failed with the
// context error.
func (e *Evaluator) EvaluateNamespace(ctx context.Context, namespace string, repoKeys []string, fetcher Fetcher) Results {
	results := Results{
		Namespace: namespace,
		Repos:     make([]RepositoryResult, len(repoKeys)),
	}
	now := e.now()

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, repoKey := range repoKeys {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results.Repos[i] = FailedRepository(repoKey, err)
				return nil
			}
			results.Repos[i] = e.evaluateOne(ctx, repoKey, fetcher, now)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (e *Evaluator) evaluateOne(ctx context.Context, repoKey string, fetcher Fetcher, now time.Time) RepositoryResult {
	raws, err := fetcher.Fetch(ctx, repoKey)
	if err != nil {
		res := FailedRepository(repoKey, security.SanitizeError(err))
		e.warn(res.FetchError.Error())
		return res
	}

	res := EvaluateRepository(repoKey, raws, e.policy, now)
	for _, s := range res.Skipped {
		e.warn(fmt.Sprintf("Skipping request in %s: %v", repoKey, s.Err))
	}
	e.debug(fmt.Sprintf("%s: %d open, %d blocked, %d mergeable, %d awaiting, %d ignored",
		repoKey, len(raws), len(res.Blocked), len(res.Mergeable), len(res.Awaiting), res.Ignored))
	return res
}

func (e *Evaluator) debug(msg string) {
	if e.log != nil {
		e.log.Debug(msg)
	}
}

func (e *Evaluator) warn(msg string) {
	if e.log != nil {
		e.log.Warn(msg)
	}
}
