package evaluate

import (
	"slices"
	"time"

	"github.com/sgaunet/auto-merger/internal/timeutil"
	"github.com/sgaunet/auto-merger/pkg/policy"
)

// BlockedEntry is a request held back by blocking labels.
type BlockedEntry struct {
	ID            int
	Title         string
	MissingLabels []string
	URL           string
}

// MergeableEntry is a request that passed every gate.
type MergeableEntry struct {
	ID            int
	Title         string
	ApprovalCount int
	URL           string
}

// AwaitingEntry is a request still waiting on approvals, an approval label or age.
// Age is how long ago it was opened, "unknown" without a creation time.
type AwaitingEntry struct {
	ID             int
	Title          string
	ApprovalCount  int
	ApprovalsShort int
	Reason         string
	Age            string
	URL            string
}

// SkippedEntry is a payload that could not be normalized.
type SkippedEntry struct {
	Err error
}

// RepositoryResult collects the outcome of one repository for one pass.
type RepositoryResult struct {
	RepoKey     string
	Blocked     []BlockedEntry
	Mergeable   []MergeableEntry
	Awaiting    []AwaitingEntry
	Skipped     []SkippedEntry
	Ignored     int
	FetchFailed bool
	FetchError  error
}

// AddBlocked appends e unless an entry with the same ID is already present.
// It reports whether e was added.
func (r *RepositoryResult) AddBlocked(e BlockedEntry) bool {
	if slices.ContainsFunc(r.Blocked, func(b BlockedEntry) bool { return b.ID == e.ID }) {
		return false
	}
	r.Blocked = append(r.Blocked, e)
	return true
}

// AddAwaiting appends e unless an entry with the same ID is already present.
func (r *RepositoryResult) AddAwaiting(e AwaitingEntry) bool {
	if slices.ContainsFunc(r.Awaiting, func(a AwaitingEntry) bool { return a.ID == e.ID }) {
		return false
	}
	r.Awaiting = append(r.Awaiting, e)
	return true
}

// AddMergeable appends e unless an entry with the same ID is already present,
// so a request is never merged twice in one pass.
func (r *RepositoryResult) AddMergeable(e MergeableEntry) bool {
	if slices.ContainsFunc(r.Mergeable, func(m MergeableEntry) bool { return m.ID == e.ID }) {
		return false
	}
	r.Mergeable = append(r.Mergeable, e)
	return true
}

// Route files a classified record into the matching bucket. now dates the
// age of awaiting requests.
func (r *RepositoryResult) Route(rec policy.Record, c policy.Classification, now time.Time) {
	switch c.Verdict {
	case policy.VerdictBlocked:
		r.AddBlocked(BlockedEntry{
			ID:            rec.ID,
			Title:         rec.Title,
			MissingLabels: c.MissingLabels.Sorted(),
			URL:           rec.URL,
		})
	case policy.VerdictMergeable:
		r.AddMergeable(MergeableEntry{
			ID:            rec.ID,
			Title:         rec.Title,
			ApprovalCount: c.ApprovalCount,
			URL:           rec.URL,
		})
	case policy.VerdictAwaitingApproval:
		r.AddAwaiting(AwaitingEntry{
			ID:             rec.ID,
			Title:          rec.Title,
			ApprovalCount:  c.ApprovalCount,
			ApprovalsShort: c.ApprovalsShort,
			Reason:         c.Reason,
			Age:            timeutil.FormatAge(rec.CreatedAt, now),
			URL:            rec.URL,
		})
	case policy.VerdictIgnored:
		r.Ignored++
	}
}

// IsEmpty reports whether the repository has nothing to report.
func (r RepositoryResult) IsEmpty() bool {
	return len(r.Blocked) == 0 && len(r.Mergeable) == 0 && len(r.Awaiting) == 0
}

// Results is the ordered outcome of a namespace scan, one entry per
// configured repository in configuration order.
type Results struct {
	Namespace string
	Repos     []RepositoryResult
}

// Lookup returns the result for repoKey.
func (rs Results) Lookup(repoKey string) (RepositoryResult, bool) {
	for _, r := range rs.Repos {
		if r.RepoKey == repoKey {
			return r, true
		}
	}
	return RepositoryResult{}, false
}

// Failed returns the repositories whose fetch failed.
func (rs Results) Failed() []RepositoryResult {
	var out []RepositoryResult
	for _, r := range rs.Repos {
		if r.FetchFailed {
			out = append(out, r)
		}
	}
	return out
}

// Counts returns the total number of blocked, mergeable and awaiting entries.
func (rs Results) Counts() (blocked, mergeable, awaiting int) {
	for _, r := range rs.Repos {
		blocked += len(r.Blocked)
		mergeable += len(r.Mergeable)
		awaiting += len(r.Awaiting)
	}
	return blocked, mergeable, awaiting
}
