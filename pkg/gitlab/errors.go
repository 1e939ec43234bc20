package gitlab

import "errors"

// Error definitions for GitLab API operations.
var (
	errTokenRequired = errors.New("GITLAB_TOKEN environment variable is required")

	// ErrTokenRequired is returned when GITLAB_TOKEN is not set.
	ErrTokenRequired = errTokenRequired
)
