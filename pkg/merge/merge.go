// Package merge dispatches the merge action for requests classified as mergeable.
//
// Merges run one at a time and are never retried. A failed merge is recorded
// and the next request is still attempted.
package merge

import (
	"context"
	"errors"
	"fmt"

	"github.com/sgaunet/auto-merger/internal/security"
	"github.com/sgaunet/auto-merger/pkg/evaluate"
	"github.com/sgaunet/bullets"
)

var (
	errMergeFailure = errors.New("failed to merge request")

	// ErrMergeFailure wraps the error of a single failed merge.
	ErrMergeFailure = errMergeFailure
)

// Func merges request id of repoKey on the platform.
type Func func(ctx context.Context, repoKey string, id int) error

// Outcome is the result of one merge attempt.
type Outcome struct {
	RepoKey string
	ID      int
	Title   string
	URL     string
	Success bool
	Err     error
}

// Dispatcher runs merges.
type Dispatcher struct {
	dryRun bool
	log    *bullets.Logger
}

// NewDispatcher creates a dispatcher. In dry-run mode no merge is performed
// and every outcome is reported as successful.
func NewDispatcher(dryRun bool) *Dispatcher {
	return &Dispatcher{dryRun: dryRun}
}

// SetLogger sets the logger for the dispatcher.
func (d *Dispatcher) SetLogger(logger *bullets.Logger) {
	d.log = logger
}

// MergeEligible merges every entry of one repository through fn.
func (d *Dispatcher) MergeEligible(ctx context.Context, repoKey string, entries []evaluate.MergeableEntry, fn Func) []Outcome {
	outcomes := make([]Outcome, 0, len(entries))
	for _, e := range entries {
		o := Outcome{RepoKey: repoKey, ID: e.ID, Title: e.Title, URL: e.URL}

		switch {
		case ctx.Err() != nil:
			o.Err = fmt.Errorf("%w #%d in %s: %w", errMergeFailure, e.ID, repoKey, ctx.Err())
		case d.dryRun:
			o.Success = true
			d.info(fmt.Sprintf("Dry run: would merge %s #%d", repoKey, e.ID))
		default:
			if err := fn(ctx, repoKey, e.ID); err != nil {
				o.Err = fmt.Errorf("%w #%d in %s: %w", errMergeFailure, e.ID, repoKey, security.SanitizeError(err))
				d.warn(o.Err.Error())
			} else {
				o.Success = true
				d.info(fmt.Sprintf("Merged %s #%d", repoKey, e.ID))
			}
		}
		outcomes = append(outcomes, o)
	}
	return outcomes
}

// MergeAll merges the mergeable entries of every repository in results.
func (d *Dispatcher) MergeAll(ctx context.Context, results evaluate.Results, fn Func) []Outcome {
	var outcomes []Outcome
	for _, r := range results.Repos {
		if len(r.Mergeable) == 0 {
			continue
		}
		outcomes = append(outcomes, d.MergeEligible(ctx, r.RepoKey, r.Mergeable, fn)...)
	}
	return outcomes
}

// Split separates successful outcomes from failed ones.
func Split(outcomes []Outcome) (succeeded, failed []Outcome) {
	for _, o := range outcomes {
		if o.Success {
			succeeded = append(succeeded, o)
		} else {
			failed = append(failed, o)
		}
	}
	return succeeded, failed
}

func (d *Dispatcher) info(msg string) {
	if d.log != nil {
		d.log.Info(msg)
	}
}

func (d *Dispatcher) warn(msg string) {
	if d.log != nil {
		d.log.Warn(msg)
	}
}
