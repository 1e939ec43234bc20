package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sgaunet/auto-merger/pkg/config"
	"github.com/sgaunet/auto-merger/pkg/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
debug: true
workers: 4
github:
  namespace: acme
  repos:
    - widgets
    - git@github.com:acme/gadgets.git
    - widgets
  blocker_labels: [pr/failing-ci, pr/missing-review]
  approval_labels: [lgtm]
  approvals: 3
  pr_lifetime: 0
gitlab:
  namespace: acme/backend
  repos: [api]
  blocker_labels: [do-not-merge]
email:
  from: bot@example.com
  recipients: [team@example.com]
`

// setupTestHome writes content to ~/.auto-merger.yaml in a temporary home.
func setupTestHome(t *testing.T, content string) string {
	t.Helper()
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)
	path := filepath.Join(tmpHome, config.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultPath(t *testing.T) {
	setupTestHome(t, validConfigYAML)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 4, cfg.Workers)
	require.NotNil(t, cfg.GitHub)
	assert.Equal(t, "acme", cfg.GitHub.Namespace)
	assert.Equal(t, config.DefaultGitHubMergeMethod, cfg.GitHub.MergeMethod)
	require.NotNil(t, cfg.GitLab)
	assert.Equal(t, config.DefaultGitLabURL, cfg.GitLab.URL)
	assert.Equal(t, config.DefaultGitLabMergeMethod, cfg.GitLab.MergeMethod)
	assert.Equal(t, config.DefaultSMTPHost, cfg.Email.SMTPHost)
	assert.Equal(t, config.DefaultSMTPPort, cfg.Email.SMTPPort)
	assert.Equal(t, []string{"team@example.com"}, cfg.Email.Recipients)
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validConfigYAML), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "acme/backend", cfg.GitLab.Namespace)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := config.Load("")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfiguration)
	assert.Contains(t, err.Error(), config.DefaultFileName)
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := config.Parse([]byte("github:\n\trepos: [a]\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfiguration)
}

func TestNamespaceConfig_Policy(t *testing.T) {
	cfg, err := config.Parse([]byte(validConfigYAML))
	require.NoError(t, err)

	p := cfg.GitHub.Policy()
	assert.Equal(t, []string{"pr/failing-ci", "pr/missing-review"}, p.BlockingLabels.Sorted())
	assert.Equal(t, []string{"lgtm"}, p.ApprovalLabels.Sorted())
	assert.Equal(t, 3, p.MinApprovals)
	assert.Equal(t, 0, p.MinAgeDays, "explicit zero disables the age gate")
	assert.Equal(t, policy.DefaultChangesRequestedLabel, p.ChangesRequestedLabel)

	p = cfg.GitLab.Policy()
	assert.Equal(t, policy.DefaultMinApprovals, p.MinApprovals)
	assert.Equal(t, policy.DefaultMinAgeDays, p.MinAgeDays)
	assert.True(t, p.ApprovalLabels.IsEmpty())
}

func TestNamespaceConfig_RepoKeys(t *testing.T) {
	cfg, err := config.Parse([]byte(validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"acme/widgets", "acme/gadgets"}, cfg.GitHub.RepoKeys())
	assert.Equal(t, []string{"acme/backend/api"}, cfg.GitLab.RepoKeys())

	bare := &config.NamespaceConfig{Repos: []string{"group/project", " ", "https://gitlab.com/group/tool.git"}}
	assert.Equal(t, []string{"group/project", "tool"}, bare.RepoKeys())
}

func TestSection(t *testing.T) {
	cfg, err := config.Parse([]byte(validConfigYAML))
	require.NoError(t, err)

	gh, err := cfg.Section(config.PlatformGitHub)
	require.NoError(t, err)
	assert.Same(t, cfg.GitHub, gh)

	gl, err := cfg.Section(config.PlatformGitLab)
	require.NoError(t, err)
	assert.Same(t, cfg.GitLab, gl)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		platform string
		contains []string
	}{
		{
			name:     "missing section",
			yaml:     "gitlab:\n  repos: [a]\n",
			platform: config.PlatformGitHub,
			contains: []string{"missing 'github' section"},
		},
		{
			name:     "missing repos and namespace reported together",
			yaml:     "github:\n  blocker_labels: [x]\n",
			platform: config.PlatformGitHub,
			contains: []string{"'repos'", "'namespace'"},
		},
		{
			name:     "gitlab namespace optional",
			yaml:     "gitlab:\n  repos: [group/api]\n",
			platform: config.PlatformGitLab,
		},
		{
			name:     "negative approvals",
			yaml:     "github:\n  namespace: acme\n  repos: [a]\n  approvals: -1\n",
			platform: config.PlatformGitHub,
			contains: []string{"approvals must be >= 0"},
		},
		{
			name:     "negative pr_lifetime",
			yaml:     "github:\n  namespace: acme\n  repos: [a]\n  pr_lifetime: -2\n",
			platform: config.PlatformGitHub,
			contains: []string{"pr_lifetime must be >= 0"},
		},
		{
			name:     "bad merge method",
			yaml:     "gitlab:\n  repos: [a]\n  merge_method: rebase\n",
			platform: config.PlatformGitLab,
			contains: []string{"unsupported merge_method \"rebase\""},
		},
		{
			name:     "negative workers",
			yaml:     "workers: -1\ngithub:\n  namespace: acme\n  repos: [a]\n",
			platform: config.PlatformGitHub,
			contains: []string{"workers must be at least 1"},
		},
		{
			name:     "bad smtp port",
			yaml:     "email:\n  smtp_port: 70000\ngithub:\n  namespace: acme\n  repos: [a]\n",
			platform: config.PlatformGitHub,
			contains: []string{"smtp_port"},
		},
		{
			name:     "unknown platform",
			yaml:     "github:\n  namespace: acme\n  repos: [a]\n",
			platform: "bitbucket",
			contains: []string{"unknown platform"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Parse([]byte(tt.yaml))
			require.NoError(t, err)

			err = cfg.Validate(tt.platform)
			if len(tt.contains) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrConfiguration)
			for _, s := range tt.contains {
				assert.Contains(t, err.Error(), s)
			}

			_, err = cfg.Section(tt.platform)
			assert.ErrorIs(t, err, config.ErrConfiguration)
		})
	}
}
