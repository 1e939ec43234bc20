package github

import "errors"

// Error definitions for GitHub API operations.
var (
	errTokenRequired  = errors.New("GH_TOKEN or GITHUB_TOKEN environment variable is required")
	errInvalidRepoKey = errors.New("invalid repository, expected owner/name")
	errNotMerged      = errors.New("pull request was not merged")

	// ErrTokenRequired is returned when no GitHub token is set in the environment.
	ErrTokenRequired = errTokenRequired
	// ErrInvalidRepoKey is returned when a repository key is not "owner/name".
	ErrInvalidRepoKey = errInvalidRepoKey
	// ErrNotMerged is returned when GitHub answers a merge call without merging.
	ErrNotMerged = errNotMerged
)
