package platform

import (
	"fmt"

	"github.com/sgaunet/auto-merger/internal/logger"
	"github.com/sgaunet/auto-merger/internal/security"
	"github.com/sgaunet/auto-merger/pkg/config"
	"github.com/sgaunet/auto-merger/pkg/evaluate"
	"github.com/sgaunet/auto-merger/pkg/git"
	ghclient "github.com/sgaunet/auto-merger/pkg/github"
	"github.com/sgaunet/auto-merger/pkg/gitlab"
	"github.com/sgaunet/bullets"
)

// NewSource creates the Source for platform ("github" or "gitlab") with a
// client authenticated from the environment.
//
//nolint:ireturn // Factory function must return interface to enable platform abstraction.
func NewSource(platform string, cfg *config.NamespaceConfig, log *bullets.Logger) (Source, error) {
	if log == nil {
		log = logger.NoLogger()
	}
	switch platform {
	case config.PlatformGitLab:
		client, err := gitlab.NewClient(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitLab client: %w", err)
		}
		client.SetLogger(log)
		return NewGitLabAdapter(client, cfg, log), nil

	case config.PlatformGitHub:
		client, err := ghclient.NewClient(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub client: %w", err)
		}
		client.SetLogger(log)
		return NewGitHubAdapter(client, cfg, log), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, platform)
	}
}

// NewOfflineSource creates the Source for platform without an API client. It
// only builds names and URLs; Authenticate, ListOpenRequests and Merge must
// not be called on it.
//
//nolint:ireturn // Factory function must return interface to enable platform abstraction.
func NewOfflineSource(platform string, cfg *config.NamespaceConfig, log *bullets.Logger) (Source, error) {
	switch platform {
	case config.PlatformGitLab:
		return NewGitLabAdapter(nil, cfg, log), nil
	case config.PlatformGitHub:
		return NewGitHubAdapter(nil, cfg, log), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, platform)
	}
}

// NewFetcher returns the fetcher of a namespace. With verify_remote set the
// git remote of each repository is probed first, using the platform token.
//
//nolint:ireturn // Returns either the plain or the verifying fetcher.
func NewFetcher(platform string, source Source, cfg *config.NamespaceConfig, log *bullets.Logger) evaluate.Fetcher {
	if log == nil {
		log = logger.NoLogger()
	}
	if !cfg.VerifyRemote {
		return Fetcher(source)
	}

	var prober *git.Prober
	switch platform {
	case config.PlatformGitLab:
		token, _ := security.TokenFromEnv(gitlab.TokenEnv)
		prober = git.NewProber(git.GitLabTokenUser, token)
	default:
		token, _ := security.TokenFromEnv(ghclient.TokenEnv, ghclient.FallbackTokenEnv)
		prober = git.NewProber(git.GitHubTokenUser, token)
	}
	prober.SetLogger(log)
	return NewVerifyingFetcher(source, prober, log)
}
