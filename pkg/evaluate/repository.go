package evaluate

import (
	"fmt"
	"time"

	"github.com/sgaunet/auto-merger/pkg/policy"
)

// EvaluateRepository normalizes and classifies every raw request of one
// repository. Malformed payloads are recorded as skipped and do not stop the
// remaining requests.
func EvaluateRepository(repoKey string, raws []policy.RawRequest, p policy.Policy, now time.Time) RepositoryResult {
	result := RepositoryResult{RepoKey: repoKey}
	for _, raw := range raws {
		rec, err := policy.Normalize(raw, repoKey)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedEntry{Err: err})
			continue
		}
		result.Route(rec, policy.Classify(rec, p, now), now)
	}
	return result
}

// FailedRepository returns the result of a repository whose requests could not
// be fetched. The buckets stay empty.
func FailedRepository(repoKey string, err error) RepositoryResult {
	return RepositoryResult{
		RepoKey:     repoKey,
		FetchFailed: true,
		FetchError:  fmt.Errorf("%w for %s: %w", errFetchFailure, repoKey, err),
	}
}
