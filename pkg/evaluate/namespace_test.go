package evaluate_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sgaunet/auto-merger/internal/logger"
	"github.com/sgaunet/auto-merger/pkg/evaluate"
	"github.com/sgaunet/auto-merger/pkg/policy"
	"github.com/sgaunet/auto-merger/testing/fixtures"
	"github.com/sgaunet/auto-merger/testing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvaluator(workers int) *evaluate.Evaluator {
	e := evaluate.NewEvaluator(fixtures.ValidPolicy(), evaluate.Options{Workers: workers, Now: fixtures.Now})
	e.SetLogger(logger.NoLogger())
	return e
}

func TestEvaluateNamespace_FetchFailureContinues(t *testing.T) {
	fetcher := mocks.NewFetcher()
	fetcher.Responses["acme/one"] = []policy.RawRequest{fixtures.MergeableRequest(1)}
	fetcher.Errors["acme/two"] = errors.New("404 Not Found")
	fetcher.Responses["acme/three"] = []policy.RawRequest{fixtures.BlockedRequest(5)}

	rs := newEvaluator(1).EvaluateNamespace(context.Background(), "acme",
		[]string{"acme/one", "acme/two", "acme/three"}, fetcher)

	assert.Equal(t, "acme", rs.Namespace)
	require.Len(t, rs.Repos, 3)

	assert.Equal(t, "acme/one", rs.Repos[0].RepoKey)
	assert.Len(t, rs.Repos[0].Mergeable, 1)

	assert.True(t, rs.Repos[1].FetchFailed)
	assert.ErrorIs(t, rs.Repos[1].FetchError, evaluate.ErrFetchFailure)
	assert.True(t, rs.Repos[1].IsEmpty())

	assert.False(t, rs.Repos[2].FetchFailed)
	assert.Len(t, rs.Repos[2].Blocked, 1)

	assert.Equal(t, 3, fetcher.GetCallCount("Fetch"))
}

func TestEvaluateNamespace_OrderStableWithWorkers(t *testing.T) {
	keys := []string{"acme/a", "acme/b", "acme/c", "acme/d", "acme/e", "acme/f"}
	var inFlight, peak atomic.Int32

	fetcher := evaluate.FetcherFunc(func(_ context.Context, repoKey string) ([]policy.RawRequest, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		return []policy.RawRequest{fixtures.NewRequest(len(repoKey), repoKey, fixtures.WithLabels(fixtures.FailingCILabel))}, nil
	})

	rs := newEvaluator(3).EvaluateNamespace(context.Background(), "acme", keys, fetcher)

	require.Len(t, rs.Repos, len(keys))
	for i, key := range keys {
		assert.Equal(t, key, rs.Repos[i].RepoKey)
		require.Len(t, rs.Repos[i].Blocked, 1)
		assert.Equal(t, key, rs.Repos[i].Blocked[0].Title)
	}
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestEvaluateNamespace_DedupIsPerRepository(t *testing.T) {
	fetcher := evaluate.FetcherFunc(func(context.Context, string) ([]policy.RawRequest, error) {
		return []policy.RawRequest{fixtures.BlockedRequest(42), fixtures.BlockedRequest(42)}, nil
	})

	rs := newEvaluator(2).EvaluateNamespace(context.Background(), "acme", []string{"acme/a", "acme/b"}, fetcher)

	for _, r := range rs.Repos {
		assert.Len(t, r.Blocked, 1, r.RepoKey)
	}
}

func TestEvaluateNamespace_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var mu sync.Mutex
	var seen []string

	fetcher := evaluate.FetcherFunc(func(_ context.Context, repoKey string) ([]policy.RawRequest, error) {
		mu.Lock()
		seen = append(seen, repoKey)
		mu.Unlock()
		cancel()
		return nil, nil
	})

	rs := newEvaluator(1).EvaluateNamespace(ctx, "acme", []string{"acme/a", "acme/b", "acme/c"}, fetcher)

	assert.Equal(t, []string{"acme/a"}, seen)
	assert.False(t, rs.Repos[0].FetchFailed)
	for _, r := range rs.Repos[1:] {
		assert.True(t, r.FetchFailed, r.RepoKey)
		assert.ErrorIs(t, r.FetchError, context.Canceled)
	}
}

func TestEvaluateNamespace_Empty(t *testing.T) {
	rs := newEvaluator(4).EvaluateNamespace(context.Background(), "acme", nil, mocks.NewFetcher())
	assert.Empty(t, rs.Repos)
}

func TestNewEvaluator_Defaults(t *testing.T) {
	e := evaluate.NewEvaluator(policy.Default(), evaluate.Options{})
	assert.Equal(t, policy.DefaultMinApprovals, e.Policy().MinApprovals)

	rs := e.EvaluateNamespace(context.Background(), "acme", []string{"acme/a"}, mocks.NewFetcher())
	require.Len(t, rs.Repos, 1)
	assert.True(t, rs.Repos[0].IsEmpty())
}
