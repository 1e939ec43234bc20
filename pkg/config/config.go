// Package config handles loading and validation of user configuration.
//
// The file is YAML, by default ~/.auto-merger.yaml:
//
//	debug: false
//	workers: 1
//	github:
//	  namespace: acme
//	  repos: [widgets, gadgets]
//	  blocker_labels: [pr/failing-ci, pr/missing-review]
//	  approval_labels: [lgtm]
//	  approvals: 2
//	  pr_lifetime: 1
//	gitlab:
//	  url: https://gitlab.com
//	  namespace: acme/backend
//	  repos: [api]
//	email:
//	  from: bot@example.com
//	  smtp_host: 127.0.0.1
//	  smtp_port: 25
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sgaunet/auto-merger/internal/urlutil"
	"github.com/sgaunet/auto-merger/pkg/policy"
	"gopkg.in/yaml.v3"
)

// Platforms a namespace section can be configured for.
const (
	PlatformGitHub = "github"
	PlatformGitLab = "gitlab"
)

// Defaults applied to unset values.
const (
	DefaultFileName          = ".auto-merger.yaml"
	DefaultGitLabURL         = "https://gitlab.com"
	DefaultGitHubMergeMethod = "rebase"
	DefaultGitLabMergeMethod = "merge"
	DefaultSMTPHost          = "127.0.0.1"
	DefaultSMTPPort          = 25
	DefaultWorkers           = 1
	maxPort                  = 65535
)

var (
	errConfiguration  = errors.New("configuration error")
	errConfigNotFound = errors.New("config file not found")

	// ErrConfiguration wraps every configuration problem. It is fatal and is
	// reported before any repository is processed.
	ErrConfiguration = errConfiguration
)

var mergeMethods = map[string][]string{
	PlatformGitHub: {"merge", "squash", "rebase"},
	PlatformGitLab: {"merge", "squash"},
}

// Config represents the complete configuration for auto-merger.
type Config struct {
	Debug   bool             `yaml:"debug"`
	Workers int              `yaml:"workers"`
	GitHub  *NamespaceConfig `yaml:"github"`
	GitLab  *NamespaceConfig `yaml:"gitlab"`
	Email   EmailConfig      `yaml:"email"`
}

// NamespaceConfig is the policy and repository list of one GitHub
// organization or GitLab group.
type NamespaceConfig struct {
	URL                   string   `yaml:"url"`
	Namespace             string   `yaml:"namespace"`
	Repos                 []string `yaml:"repos"`
	BlockerLabels         []string `yaml:"blocker_labels"`
	ApprovalLabels        []string `yaml:"approval_labels"`
	Approvals             *int     `yaml:"approvals"`
	PRLifetime            *int     `yaml:"pr_lifetime"`
	ChangesRequestedLabel string   `yaml:"changes_requested_label"`
	MergeMethod           string   `yaml:"merge_method"`
	VerifyRemote          bool     `yaml:"verify_remote"`
}

// EmailConfig holds the SMTP settings of the notifier.
type EmailConfig struct {
	From       string   `yaml:"from"`
	SMTPHost   string   `yaml:"smtp_host"`
	SMTPPort   int      `yaml:"smtp_port"`
	Recipients []string `yaml:"recipients"`
}

// DefaultPath returns ~/.auto-merger.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, DefaultFileName), nil
}

// Load reads and parses the configuration file at path, or at DefaultPath
// when path is empty. Platform sections are validated by Section.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errConfiguration, err)
		}
		path = p
	}

	// #nosec G304 - Reading the user's own config file is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %s", errConfiguration, errConfigNotFound, path)
	}
	return Parse(data)
}

// Parse decodes YAML configuration and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config file: %w", errConfiguration, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.Email.SMTPHost == "" {
		c.Email.SMTPHost = DefaultSMTPHost
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = DefaultSMTPPort
	}
	if c.GitHub != nil && c.GitHub.MergeMethod == "" {
		c.GitHub.MergeMethod = DefaultGitHubMergeMethod
	}
	if c.GitLab != nil {
		if c.GitLab.URL == "" {
			c.GitLab.URL = DefaultGitLabURL
		}
		if c.GitLab.MergeMethod == "" {
			c.GitLab.MergeMethod = DefaultGitLabMergeMethod
		}
	}
}

// Section returns the validated namespace configuration of platform.
func (c *Config) Section(platform string) (*NamespaceConfig, error) {
	if err := c.Validate(platform); err != nil {
		return nil, err
	}
	switch platform {
	case PlatformGitHub:
		return c.GitHub, nil
	default:
		return c.GitLab, nil
	}
}

// Validate checks the run settings and the section of platform. Every
// problem found is reported in a single error wrapping ErrConfiguration.
func (c *Config) Validate(platform string) error {
	var problems []error

	if c.Workers < 1 {
		problems = append(problems, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.Email.SMTPPort < 1 || c.Email.SMTPPort > maxPort {
		problems = append(problems, fmt.Errorf("email.smtp_port %d is out of range", c.Email.SMTPPort))
	}

	var section *NamespaceConfig
	switch platform {
	case PlatformGitHub:
		section = c.GitHub
	case PlatformGitLab:
		section = c.GitLab
	default:
		problems = append(problems, fmt.Errorf("unknown platform %q", platform))
	}

	if platform == PlatformGitHub || platform == PlatformGitLab {
		if section == nil {
			problems = append(problems, fmt.Errorf("missing '%s' section", platform))
		} else {
			problems = append(problems, section.validate(platform)...)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", errConfiguration, errors.Join(problems...))
	}
	return nil
}

func (n *NamespaceConfig) validate(platform string) []error {
	var problems []error
	if len(n.Repos) == 0 {
		problems = append(problems, fmt.Errorf("%s: missing mandatory field 'repos'", platform))
	}
	if platform == PlatformGitHub && strings.TrimSpace(n.Namespace) == "" {
		problems = append(problems, fmt.Errorf("%s: missing mandatory field 'namespace'", platform))
	}
	if n.Approvals != nil && *n.Approvals < 0 {
		problems = append(problems, fmt.Errorf("%s: approvals must be >= 0", platform))
	}
	if n.PRLifetime != nil && *n.PRLifetime < 0 {
		problems = append(problems, fmt.Errorf("%s: pr_lifetime must be >= 0", platform))
	}
	if !slices.Contains(mergeMethods[platform], n.MergeMethod) {
		problems = append(problems, fmt.Errorf("%s: unsupported merge_method %q (allowed: %s)",
			platform, n.MergeMethod, strings.Join(mergeMethods[platform], ", ")))
	}
	return problems
}

// MinApprovals returns approvals or its default.
func (n *NamespaceConfig) MinApprovals() int {
	if n.Approvals == nil {
		return policy.DefaultMinApprovals
	}
	return *n.Approvals
}

// MinAgeDays returns pr_lifetime or its default.
func (n *NamespaceConfig) MinAgeDays() int {
	if n.PRLifetime == nil {
		return policy.DefaultMinAgeDays
	}
	return *n.PRLifetime
}

// Policy builds the merge policy of the namespace.
func (n *NamespaceConfig) Policy() policy.Policy {
	return policy.New(n.BlockerLabels, n.ApprovalLabels, n.MinApprovals(), n.MinAgeDays(), n.ChangesRequestedLabel)
}

// RepoKeys returns the "namespace/name" key of every configured repository
// in configuration order. Entries given as URLs are reduced to their name and
// duplicates are dropped.
func (n *NamespaceConfig) RepoKeys() []string {
	keys := make([]string, 0, len(n.Repos))
	for _, entry := range n.Repos {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		key := urlutil.RepoKey(n.Namespace, entry)
		if !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
	}
	return keys
}
