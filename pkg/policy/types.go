// Package policy turns raw pull/merge request payloads into normalized records
// and classifies them against a label and approval policy.
//
// Everything in this package is pure: no I/O, no logging, no clock. The
// evaluation time is always passed in.
package policy

import (
	"time"

	"github.com/sgaunet/auto-merger/internal/labels"
)

// Defaults applied when a namespace configuration leaves a value unset.
const (
	DefaultMinApprovals          = 2
	DefaultMinAgeDays            = 1
	DefaultChangesRequestedLabel = "pr/changes-requested"
)

// TimestampLayout is the only creation time format accepted by Normalize.
const TimestampLayout = "2006-01-02T15:04:05Z"

// ReviewApproved is the review state counted as an approval.
const ReviewApproved = "APPROVED"

// Verdict is the terminal classification of a request.
type Verdict int

// Verdicts, in increasing order of readiness.
const (
	VerdictIgnored Verdict = iota
	VerdictBlocked
	VerdictAwaitingApproval
	VerdictMergeable
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case VerdictIgnored:
		return "ignored"
	case VerdictBlocked:
		return "blocked"
	case VerdictAwaitingApproval:
		return "awaiting-approval"
	case VerdictMergeable:
		return "mergeable"
	default:
		return "unknown"
	}
}

// Policy holds the merge rules of one namespace. It is built once per run and
// never mutated.
type Policy struct {
	BlockingLabels        labels.Set
	ApprovalLabels        labels.Set
	MinApprovals          int
	MinAgeDays            int
	ChangesRequestedLabel string
}

// New builds a policy. Negative thresholds are clamped to zero and an empty
// changes-requested label falls back to DefaultChangesRequestedLabel.
func New(blocking, approval []string, minApprovals, minAgeDays int, changesRequestedLabel string) Policy {
	if changesRequestedLabel == "" {
		changesRequestedLabel = DefaultChangesRequestedLabel
	}
	return Policy{
		BlockingLabels:        labels.New(blocking...),
		ApprovalLabels:        labels.New(approval...),
		MinApprovals:          max(0, minApprovals),
		MinAgeDays:            max(0, minAgeDays),
		ChangesRequestedLabel: changesRequestedLabel,
	}
}

// Default returns a policy with no labels and the default thresholds.
func Default() Policy {
	return New(nil, nil, DefaultMinApprovals, DefaultMinAgeDays, "")
}

// Record is one normalized request. It is rebuilt on every pass.
type Record struct {
	ID           int
	Title        string
	Labels       labels.Set
	ReviewStates []string
	IsDraft      bool
	CreatedAt    *time.Time
	RepoKey      string
	URL          string
}

// Classification is the outcome of evaluating one record.
type Classification struct {
	Verdict        Verdict
	ApprovalCount  int
	MissingLabels  labels.Set
	ApprovalsShort int
	Reason         string
}
