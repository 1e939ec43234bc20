package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sgaunet/auto-merger/pkg/evaluate"
)

const jsonFileMode = 0o600

var (
	errInvalidJSONPath = errors.New("invalid JSON output path")

	// ErrInvalidJSONPath is returned by CheckJSONPath.
	ErrInvalidJSONPath = errInvalidJSONPath
)

// Document is the JSON result file. Only repositories with at least one
// non-empty bucket are present.
type Document struct {
	RunID        string                    `json:"run_id"`
	GeneratedAt  string                    `json:"generated_at"`
	Namespace    string                    `json:"namespace"`
	Repositories map[string]RepositoryJSON `json:"repositories"`
}

// RepositoryJSON is the serialized form of one repository.
type RepositoryJSON struct {
	Blocked   []BlockedJSON   `json:"blocked,omitempty"`
	Mergeable []MergeableJSON `json:"mergeable,omitempty"`
	Awaiting  []AwaitingJSON  `json:"awaiting,omitempty"`
}

// BlockedJSON is a blocked request.
type BlockedJSON struct {
	Number int      `json:"number"`
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	URL    string   `json:"url,omitempty"`
}

// MergeableJSON is a mergeable request.
type MergeableJSON struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Approvals int    `json:"approvals"`
	URL       string `json:"url,omitempty"`
}

// AwaitingJSON is a request waiting for approval.
type AwaitingJSON struct {
	Number         int    `json:"number"`
	Title          string `json:"title"`
	Approvals      int    `json:"approvals"`
	ApprovalsShort int    `json:"approvals_missing"`
	Reason         string `json:"reason,omitempty"`
	Age            string `json:"age,omitempty"`
	URL            string `json:"url,omitempty"`
}

// BuildDocument converts results into the JSON document for a run.
func BuildDocument(results evaluate.Results, opts Options, now time.Time) Document {
	doc := Document{
		RunID:        uuid.NewString(),
		GeneratedAt:  now.UTC().Format(time.RFC3339),
		Namespace:    results.Namespace,
		Repositories: make(map[string]RepositoryJSON),
	}
	for _, r := range results.Repos {
		if r.IsEmpty() {
			continue
		}
		var rj RepositoryJSON
		for _, e := range r.Blocked {
			rj.Blocked = append(rj.Blocked, BlockedJSON{
				Number: e.ID, Title: e.Title, Labels: e.MissingLabels, URL: opts.url(r.RepoKey, e.ID, e.URL),
			})
		}
		for _, e := range r.Mergeable {
			rj.Mergeable = append(rj.Mergeable, MergeableJSON{
				Number: e.ID, Title: e.Title, Approvals: e.ApprovalCount, URL: opts.url(r.RepoKey, e.ID, e.URL),
			})
		}
		for _, e := range r.Awaiting {
			rj.Awaiting = append(rj.Awaiting, AwaitingJSON{
				Number: e.ID, Title: e.Title, Approvals: e.ApprovalCount, ApprovalsShort: e.ApprovalsShort,
				Reason: e.Reason, Age: e.Age, URL: opts.url(r.RepoKey, e.ID, e.URL),
			})
		}
		doc.Repositories[r.RepoKey] = rj
	}
	return doc
}

// WriteJSON writes the result document to path.
func WriteJSON(path string, results evaluate.Results, opts Options, now time.Time) error {
	data, err := json.MarshalIndent(BuildDocument(results, opts, now), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), jsonFileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// CheckJSONPath verifies that path can receive the result file: it must not
// be a directory and its parent directory must exist. An empty path is valid
// and disables the output.
func CheckJSONPath(path string) error {
	if path == "" {
		return nil
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", errInvalidJSONPath, path)
	}
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidJSONPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", errInvalidJSONPath, dir)
	}
	return nil
}
