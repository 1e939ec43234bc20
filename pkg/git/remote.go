// Package git checks that repository remotes are reachable before their
// requests are evaluated.
package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/sgaunet/auto-merger/internal/logger"
	"github.com/sgaunet/auto-merger/internal/security"
	"github.com/sgaunet/bullets"
)

// Usernames sent with a token over HTTPS basic auth.
const (
	GitHubTokenUser = "x-access-token"
	GitLabTokenUser = "oauth2"
)

var (
	errProbeFailed = errors.New("remote is not reachable")

	// ErrProbeFailed is returned when a remote cannot be listed.
	ErrProbeFailed = errProbeFailed
)

// RemoteInfo describes a reachable remote.
type RemoteInfo struct {
	URL           string
	DefaultBranch string
	Refs          int
}

// Prober lists remote references without cloning.
type Prober struct {
	auth transport.AuthMethod
	log  *bullets.Logger
}

// NewProber creates a prober. An empty token probes anonymously.
func NewProber(username string, token security.SecureToken) *Prober {
	p := &Prober{log: logger.NoLogger()}
	if !token.IsEmpty() {
		p.auth = &http.BasicAuth{Username: username, Password: token.Value()}
	}
	return p
}

// SetLogger sets the logger for the prober.
func (p *Prober) SetLogger(logger *bullets.Logger) {
	p.log = logger
}

// Probe runs the equivalent of `git ls-remote url` against an in-memory
// remote. A reachable but empty repository is not an error.
func (p *Prober) Probe(ctx context.Context, url string) (RemoteInfo, error) {
	remote := git.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})

	refs, err := remote.ListContext(ctx, &git.ListOptions{Auth: p.auth})
	if errors.Is(err, transport.ErrEmptyRemoteRepository) {
		p.log.Debug("Remote is empty: " + url)
		return RemoteInfo{URL: url}, nil
	}
	if err != nil {
		return RemoteInfo{}, fmt.Errorf("%w: %s: %w", errProbeFailed, url, security.SanitizeError(err))
	}

	info := RemoteInfo{URL: url, DefaultBranch: DefaultBranch(refs), Refs: len(refs)}
	p.log.Debug(fmt.Sprintf("Remote %s reachable, %d refs, default branch %q", url, info.Refs, info.DefaultBranch))
	return info, nil
}

// DefaultBranch returns the branch HEAD points to, or "" when HEAD is absent
// or detached.
func DefaultBranch(refs []*plumbing.Reference) string {
	for _, ref := range refs {
		if ref.Name() == plumbing.HEAD && ref.Type() == plumbing.SymbolicReference {
			if target := ref.Target(); target.IsBranch() {
				return target.Short()
			}
		}
	}
	return ""
}
