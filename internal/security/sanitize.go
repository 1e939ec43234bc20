package security

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	gitlabTokenRegex = regexp.MustCompile(`glpat-[a-zA-Z0-9_-]{6,}`)
	githubTokenRegex = regexp.MustCompile(`(?:gh[opsu]_[a-zA-Z0-9]{20,}|github_pat_[a-zA-Z0-9_]{20,})`)
	authHeaderRegex  = regexp.MustCompile(`(?i)authorization:\s*(?:bearer|basic|token)\s+[a-zA-Z0-9+/=_-]{10,}`)
	urlUserinfoRegex = regexp.MustCompile(`(https?://)[^/@\s:]+:[^/@\s]+@`)

	errSanitized = errors.New("sanitized error")
)

// SanitizeString redacts platform tokens, authorization headers and URL
// credentials from s. It is applied to every error message before it reaches
// a log line, a report or an email.
func SanitizeString(s string) string {
	s = gitlabTokenRegex.ReplaceAllString(s, "[gitlab-token-redacted]")
	s = githubTokenRegex.ReplaceAllString(s, "[github-token-redacted]")
	s = authHeaderRegex.ReplaceAllString(s, "Authorization: [redacted]")
	s = urlUserinfoRegex.ReplaceAllString(s, "${1}[redacted]@")
	return s
}

// SanitizeError returns an error whose message went through [SanitizeString].
// The original chain is not kept. Returns nil if err is nil.
func SanitizeError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", errSanitized, SanitizeString(err.Error()))
}
