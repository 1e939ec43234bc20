package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/sgaunet/auto-merger/internal/logger"
	"github.com/sgaunet/auto-merger/internal/urlutil"
	"github.com/sgaunet/auto-merger/pkg/config"
	"github.com/sgaunet/auto-merger/pkg/evaluate"
	"github.com/sgaunet/auto-merger/pkg/notify"
	"github.com/sgaunet/auto-merger/pkg/platform"
	"github.com/sgaunet/auto-merger/pkg/report"
	"github.com/sgaunet/bullets"
)

// session holds what every command needs once the configuration is loaded
// and the platform client is authenticated.
type session struct {
	cfg      *config.Config
	platform string
	section  *config.NamespaceConfig
	source   platform.Source
	log      *bullets.Logger
	// fromDir, when set, replaces the platform API with saved gh JSON dumps.
	fromDir  string
}

// loadSession loads and validates the configuration for platformName. A
// positive workers value overrides the configured one. With fromDir set no
// API client is created and requests are read from that directory.
func loadSession(platformName string, workers int, fromDir string) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err //nolint:wrapcheck // already wraps ErrConfiguration
	}
	if workers > 0 {
		cfg.Workers = workers
	}

	section, err := cfg.Section(platformName)
	if err != nil {
		return nil, err //nolint:wrapcheck // already wraps ErrConfiguration
	}

	log := logger.NewLogger(logger.EffectiveLevel(logLevel, cfg.Debug))
	log.Debug("Configuration loaded successfully")

	newSource := platform.NewSource
	if fromDir != "" {
		newSource = platform.NewOfflineSource
	}
	source, err := newSource(platformName, section, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s client: %w", platformName, err)
	}

	return &session{
		cfg:      cfg,
		platform: platformName,
		section:  section,
		source:   source,
		log:      log,
		fromDir:  fromDir,
	}, nil
}

// authenticate verifies the platform token. Offline sessions have none.
func (s *session) authenticate(ctx context.Context) error {
	if s.fromDir != "" {
		return nil
	}
	if err := s.source.Authenticate(ctx); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}
	return nil
}

// evaluate fetches and classifies the requests of every configured repository.
func (s *session) evaluate(ctx context.Context) evaluate.Results {
	p := s.section.Policy()
	s.log.Info(fmt.Sprintf("Evaluating %d repositories of %s", len(s.section.RepoKeys()), s.namespaceURL()))
	s.log.Debug(fmt.Sprintf("Policy: blocking=%s approval=%s approvals=%d min-age=%dd",
		p.BlockingLabels, p.ApprovalLabels, p.MinApprovals, p.MinAgeDays))

	ev := evaluate.NewEvaluator(p, evaluate.Options{Workers: s.cfg.Workers})
	ev.SetLogger(s.log)
	var fetcher evaluate.Fetcher
	if s.fromDir != "" {
		s.log.Info("Reading saved requests from " + s.fromDir)
		fetcher = platform.NewDirFetcher(s.fromDir)
	} else {
		fetcher = platform.NewFetcher(s.platform, s.source, s.section, s.log)
	}
	return ev.EvaluateNamespace(ctx, s.section.Namespace, s.section.RepoKeys(), fetcher)
}

func (s *session) reportOptions() report.Options {
	return report.Options{
		Linker:         s.source,
		Noun:           s.source.Noun(),
		BlockingLabels: s.section.BlockerLabels,
	}
}

func (s *session) namespaceURL() string {
	if s.section.Namespace == "" {
		return s.source.WebURL()
	}
	return urlutil.JoinURL(s.source.WebURL(), s.section.Namespace)
}

// recipients returns the --send-email addresses, falling back to the configured ones.
func (s *session) recipients(flagged []string) []string {
	if len(flagged) > 0 {
		return flagged
	}
	return s.cfg.Email.Recipients
}

func (s *session) sender() *notify.Sender {
	sender := notify.NewSender(notify.Settings{
		From: s.cfg.Email.From,
		Host: s.cfg.Email.SMTPHost,
		Port: s.cfg.Email.SMTPPort,
	}.WithEnvCredentials())
	sender.SetLogger(s.log)
	return sender
}

// email sends body and logs instead of failing the run when delivery fails.
func (s *session) email(ctx context.Context, recipients []string, subject string, body []string) {
	if err := s.sender().Send(ctx, recipients, subject, body); err != nil {
		s.log.Error(err.Error())
	}
}

func printLines(blocks ...[]string) {
	for _, lines := range blocks {
		if len(lines) == 0 {
			continue
		}
		fmt.Println(strings.Join(lines, "\n"))
	}
}
