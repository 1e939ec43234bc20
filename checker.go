package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sgaunet/auto-merger/internal/timeutil"
	"github.com/sgaunet/auto-merger/pkg/config"
	"github.com/sgaunet/auto-merger/pkg/platform"
	"github.com/sgaunet/auto-merger/pkg/report"
	"github.com/spf13/cobra"
)

type checkerOptions struct {
	printResults bool
	recipients   []string
	jsonOutput   string
	workers      int
	fromDir      string
}

func newCheckerCmd(platformName, use, short string) *cobra.Command {
	opts := &checkerOptions{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChecker(cmd.Context(), platformName, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.printResults, "print-results", "p", false, "Print the reports on stdout")
	cmd.Flags().StringArrayVarP(&opts.recipients, "send-email", "e", nil,
		"Email the reports to this address (repeatable)")
	cmd.Flags().StringVarP(&opts.jsonOutput, "json-output", "j", "", "Write the results as JSON to this file")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Number of repositories evaluated in parallel")
	cmd.Flags().StringVar(&opts.fromDir, "from-dir", "",
		"Evaluate saved 'gh pr list --json "+platform.GhListFields+"' output (<dir>/<owner>/<repo>.json) instead of calling the API")
	return cmd
}

func runChecker(ctx context.Context, platformName string, opts *checkerOptions) error {
	start := time.Now()

	if err := report.CheckJSONPath(opts.jsonOutput); err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfiguration, err)
	}

	s, err := loadSession(platformName, opts.workers, opts.fromDir)
	if err != nil {
		return err
	}
	if err := s.authenticate(ctx); err != nil {
		return err
	}

	results := s.evaluate(ctx)
	ro := s.reportOptions()

	blockedPlain, blockedHTML := report.FormatBlockedReport(results, ro)
	awaitingPlain, _ := report.FormatAwaitingReport(results, ro)
	failedPlain, _ := report.FormatFailedReport(results, ro)
	mergeablePlain, mergeableHTML := report.FormatMergeableReport(results, ro)

	if opts.printResults {
		printLines(blockedPlain, awaitingPlain, failedPlain, mergeablePlain)
	}

	if opts.jsonOutput != "" {
		if err := report.WriteJSON(opts.jsonOutput, results, ro, time.Now()); err != nil {
			return fmt.Errorf("failed to write JSON output: %w", err)
		}
		s.log.Info("Results written to " + opts.jsonOutput)
	}

	body := append(append([]string{}, blockedHTML...), mergeableHTML...)
	s.email(ctx, s.recipients(opts.recipients), checkerSubject(s), body)

	blocked, mergeable, awaiting := results.Counts()
	s.log.Info(fmt.Sprintf("%d blocked, %d mergeable, %d awaiting approval, %d repositories failed (%s)",
		blocked, mergeable, awaiting, len(results.Failed()), timeutil.FormatDuration(time.Since(start))))
	return ctx.Err() //nolint:wrapcheck // context cancellation is reported as is
}

// checkerSubject returns e.g. "Pull request statuses for organization https://github.com/acme".
func checkerSubject(s *session) string {
	noun := s.source.Noun()
	scope := "organization"
	if s.platform == config.PlatformGitLab {
		scope = "group"
	}
	return fmt.Sprintf("%s%s statuses for %s %s", strings.ToUpper(noun[:1]), noun[1:], scope, s.namespaceURL())
}
