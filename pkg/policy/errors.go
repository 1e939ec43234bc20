package policy

import "errors"

var (
	errMalformedRequest = errors.New("malformed request payload")
	errMissingNumber    = errors.New("missing number")
	errMissingTitle     = errors.New("missing title")

	// ErrMalformedRequest is returned when a raw payload lacks its number or title.
	// The request is skipped and the rest of the repository is still evaluated.
	ErrMalformedRequest = errMalformedRequest
)
