package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sgaunet/auto-merger/pkg/evaluate"
	"github.com/sgaunet/auto-merger/pkg/policy"
)

// GhListFields are the fields to pass to `gh pr list --json` when saving a
// repository for [DirFetcher].
const GhListFields = "number,title,labels,reviews,isDraft,createdAt,url"

// DirFetcher reads saved `gh pr list --json` output instead of calling the
// platform. The requests of "owner/name" are read from <dir>/owner/name.json.
type DirFetcher struct {
	dir string
}

// NewDirFetcher creates a fetcher reading from dir.
func NewDirFetcher(dir string) *DirFetcher {
	return &DirFetcher{dir: dir}
}

// Fetch implements evaluate.Fetcher.
func (f *DirFetcher) Fetch(ctx context.Context, repoKey string) ([]policy.RawRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck // context error is reported as is
	}

	path := filepath.Join(f.dir, filepath.FromSlash(repoKey)+".json")
	// #nosec G304 - paths come from the configured repository list
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	raws, err := policy.ParseRawRequests(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return raws, nil
}

var _ evaluate.Fetcher = (*DirFetcher)(nil)
