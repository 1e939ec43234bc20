package mocks

import (
	"context"

	"github.com/sgaunet/auto-merger/pkg/evaluate"
	"github.com/sgaunet/auto-merger/pkg/policy"
)

// Fetcher is a mock evaluate.Fetcher keyed by repository.
// Repositories without a configured response return an empty list.
type Fetcher struct {
	recorder

	Responses map[string][]policy.RawRequest
	Errors    map[string]error
}

// NewFetcher creates a new mock fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Responses: make(map[string][]policy.RawRequest),
		Errors:    make(map[string]error),
	}
}

// Fetch implements evaluate.Fetcher.
func (m *Fetcher) Fetch(_ context.Context, repoKey string) ([]policy.RawRequest, error) {
	m.trackCall("Fetch", map[string]any{"repoKey": repoKey})
	if err, ok := m.Errors[repoKey]; ok {
		return nil, err
	}
	return m.Responses[repoKey], nil
}

// Merger records merge calls and fails the ids listed in Errors.
type Merger struct {
	recorder

	Errors map[int]error
}

// NewMerger creates a new mock merger.
func NewMerger() *Merger {
	return &Merger{Errors: make(map[int]error)}
}

// Merge has the signature of merge.Func.
func (m *Merger) Merge(_ context.Context, repoKey string, id int) error {
	m.trackCall("Merge", map[string]any{"repoKey": repoKey, "id": id})
	return m.Errors[id]
}

var _ evaluate.Fetcher = (*Fetcher)(nil)
