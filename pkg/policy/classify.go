package policy

import (
	"fmt"
	"strings"
	"time"
)

const hoursPerDay = 24

// Classify evaluates a record against p at time now.
//
// The rules apply in a fixed order and the first terminal one wins:
// draft, changes requested, blocking labels, approval labels, approval count,
// then age. ApprovalsShort is filled once approvals have been counted.
func Classify(rec Record, p Policy, now time.Time) Classification {
	if rec.IsDraft {
		return Classification{Verdict: VerdictIgnored, Reason: "draft"}
	}
	if p.ChangesRequestedLabel != "" && rec.Labels.Has(p.ChangesRequestedLabel) {
		return Classification{Verdict: VerdictIgnored, Reason: "changes requested"}
	}

	if missing := rec.Labels.Intersect(p.BlockingLabels); !missing.IsEmpty() {
		return Classification{
			Verdict:       VerdictBlocked,
			MissingLabels: missing,
			Reason:        "blocked by " + missing.String(),
		}
	}

	c := Classification{ApprovalCount: CountApprovals(rec.ReviewStates)}
	c.ApprovalsShort = max(0, p.MinApprovals-c.ApprovalCount)

	switch {
	case !p.ApprovalLabels.IsEmpty() && !rec.Labels.Overlaps(p.ApprovalLabels):
		c.Verdict = VerdictAwaitingApproval
		c.Reason = "missing approval label (one of: " + p.ApprovalLabels.String() + ")"
	case c.ApprovalsShort > 0:
		c.Verdict = VerdictAwaitingApproval
		c.Reason = fmt.Sprintf("missing %d approval(s)", c.ApprovalsShort)
	case !AgeGatePasses(rec.CreatedAt, p.MinAgeDays, now):
		c.Verdict = VerdictAwaitingApproval
		if rec.CreatedAt == nil {
			c.Reason = "unknown creation time"
		} else {
			c.Reason = fmt.Sprintf("opened less than %d day(s) ago", p.MinAgeDays)
		}
	default:
		c.Verdict = VerdictMergeable
	}
	return c
}

// CountApprovals counts APPROVED review events. Several approvals by the same
// reviewer each count.
func CountApprovals(states []string) int {
	n := 0
	for _, s := range states {
		if strings.EqualFold(strings.TrimSpace(s), ReviewApproved) {
			n++
		}
	}
	return n
}

// AgeGatePasses reports whether a request created at createdAt is at least
// minAgeDays old at now. A zero minimum always passes; an unknown creation
// time fails any positive minimum.
func AgeGatePasses(createdAt *time.Time, minAgeDays int, now time.Time) bool {
	if minAgeDays <= 0 {
		return true
	}
	if createdAt == nil {
		return false
	}
	return !now.Before(createdAt.Add(time.Duration(minAgeDays) * hoursPerDay * time.Hour))
}

