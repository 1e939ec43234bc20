package policy

import (
	"fmt"
	"time"

	"github.com/sgaunet/auto-merger/internal/labels"
)

// Normalize converts a raw payload into a Record.
//
// A payload without a number or a title yields an error wrapping
// ErrMalformedRequest. Missing labels or reviews are empty, and a creation
// time that does not match TimestampLayout leaves CreatedAt nil.
func Normalize(raw RawRequest, repoKey string) (Record, error) {
	if raw.Number == nil {
		return Record{}, fmt.Errorf("%w: %w in %s", errMalformedRequest, errMissingNumber, repoKey)
	}
	if raw.Title == nil {
		return Record{}, fmt.Errorf("%w: %w for #%d in %s", errMalformedRequest, errMissingTitle, *raw.Number, repoKey)
	}

	set := labels.New()
	for _, l := range raw.Labels {
		set.Add(l.Name)
	}

	states := make([]string, 0, len(raw.Reviews))
	for _, r := range raw.Reviews {
		states = append(states, r.State)
	}

	return Record{
		ID:           *raw.Number,
		Title:        *raw.Title,
		Labels:       set,
		ReviewStates: states,
		IsDraft:      bool(raw.IsDraft),
		CreatedAt:    ParseTimestamp(raw.CreatedAt),
		RepoKey:      repoKey,
		URL:          raw.URL,
	}, nil
}

// ParseTimestamp parses s with TimestampLayout and returns nil on failure.
func ParseTimestamp(s string) *time.Time {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// FormatTimestamp renders t with TimestampLayout in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
