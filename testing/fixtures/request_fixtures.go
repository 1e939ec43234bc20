package fixtures

import (
	"time"

	"github.com/sgaunet/auto-merger/pkg/policy"
)

// Test constants for request fixtures.
const (
	DefaultRepoKey      = "acme/widgets"
	FailingCILabel      = "pr/failing-ci"
	MissingReviewLabel  = "pr/missing-review"
	LGTMLabel           = "lgtm"
	defaultRequestTitle = "Update dependencies"
)

// Now is the fixed evaluation time used across tests.
func Now() time.Time {
	return time.Date(2024, 12, 20, 10, 35, 20, 0, time.UTC)
}

// RequestOption customizes a raw request fixture.
type RequestOption func(*policy.RawRequest)

// NewRequest returns a raw request with the given number and title and no
// labels, reviews or creation time.
func NewRequest(number int, title string, opts ...RequestOption) policy.RawRequest {
	raw := policy.RawRequest{Number: &number, Title: &title}
	for _, opt := range opts {
		opt(&raw)
	}
	return raw
}

// WithLabels adds labels.
func WithLabels(names ...string) RequestOption {
	return func(r *policy.RawRequest) {
		for _, n := range names {
			r.Labels = append(r.Labels, policy.RawLabel{Name: n})
		}
	}
}

// WithReviews appends review events with the given states.
func WithReviews(states ...string) RequestOption {
	return func(r *policy.RawRequest) {
		for _, s := range states {
			r.Reviews = append(r.Reviews, policy.RawReview{State: s})
		}
	}
}

// WithApprovals appends n APPROVED review events.
func WithApprovals(n int) RequestOption {
	return func(r *policy.RawRequest) {
		for range n {
			r.Reviews = append(r.Reviews, policy.RawReview{State: policy.ReviewApproved})
		}
	}
}

// AsDraft marks the request as a draft.
func AsDraft() RequestOption {
	return func(r *policy.RawRequest) { r.IsDraft = true }
}

// CreatedAt sets the raw creation timestamp.
func CreatedAt(ts string) RequestOption {
	return func(r *policy.RawRequest) { r.CreatedAt = ts }
}

// CreatedDaysAgo sets the creation time relative to Now.
func CreatedDaysAgo(days int) RequestOption {
	return CreatedAt(policy.FormatTimestamp(Now().AddDate(0, 0, -days)))
}

// WithURL sets the web URL.
func WithURL(url string) RequestOption {
	return func(r *policy.RawRequest) { r.URL = url }
}

// ValidPolicy returns the policy most tests evaluate against: two blocking
// labels, one approval label, two approvals and one day of age.
func ValidPolicy() policy.Policy {
	return policy.New(
		[]string{FailingCILabel, MissingReviewLabel},
		[]string{LGTMLabel},
		policy.DefaultMinApprovals,
		policy.DefaultMinAgeDays,
		"",
	)
}

// MergeableRequest satisfies ValidPolicy.
func MergeableRequest(number int) policy.RawRequest {
	return NewRequest(number, defaultRequestTitle,
		WithLabels(LGTMLabel),
		WithApprovals(2),
		CreatedDaysAgo(3),
	)
}

// BlockedRequest carries FailingCILabel.
func BlockedRequest(number int) policy.RawRequest {
	return NewRequest(number, defaultRequestTitle,
		WithLabels(FailingCILabel),
		WithApprovals(2),
		CreatedDaysAgo(3),
	)
}

// AwaitingRequest has the approval label but only one approval.
func AwaitingRequest(number int) policy.RawRequest {
	return NewRequest(number, defaultRequestTitle,
		WithLabels(LGTMLabel),
		WithApprovals(1),
		CreatedDaysAgo(3),
	)
}

// MalformedRequest has no number.
func MalformedRequest() policy.RawRequest {
	title := "no number"
	return policy.RawRequest{Title: &title}
}
