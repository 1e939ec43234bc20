package platform

import "errors"

// Sentinel errors for platform operations.
var (
	// ErrUnsupportedPlatform is returned by the factories for an unknown platform name.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrRemoteUnreachable marks a repository whose git remote failed the probe.
	ErrRemoteUnreachable = errors.New("repository remote is unreachable")
)
