package evaluate

import "errors"

var (
	errFetchFailure = errors.New("failed to fetch requests")

	// ErrFetchFailure marks a repository whose requests could not be listed.
	// The repository is reported as failed and the scan moves on.
	ErrFetchFailure = errFetchFailure
)
