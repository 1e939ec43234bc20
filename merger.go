package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sgaunet/auto-merger/internal/timeutil"
	"github.com/sgaunet/auto-merger/internal/ui"
	"github.com/sgaunet/auto-merger/pkg/config"
	"github.com/sgaunet/auto-merger/pkg/merge"
	"github.com/sgaunet/auto-merger/pkg/report"
	"github.com/spf13/cobra"
)

const mergeSubject = "Merge request update"

type mergerOptions struct {
	platform   string
	recipients []string
	dryRun     bool
	yes        bool
	workers    int
}

func newMergerCmd() *cobra.Command {
	opts := &mergerOptions{}
	cmd := &cobra.Command{
		Use:   "merger",
		Short: "Merge every request the policy allows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMerger(cmd.Context(), opts, confirmerFor(opts))
		},
	}
	cmd.Flags().StringVarP(&opts.platform, "platform", "P", config.PlatformGitHub, "Platform to merge on (github, gitlab)")
	cmd.Flags().StringArrayVarP(&opts.recipients, "send-email", "e", nil,
		"Email the merge results to this address (repeatable)")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Show what would be merged without merging")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Merge without asking for confirmation")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Number of repositories evaluated in parallel")
	return cmd
}

func confirmerFor(opts *mergerOptions) ui.Confirmer {
	if opts.yes || opts.dryRun {
		return ui.AutoConfirmer(true)
	}
	return ui.NewSurveyConfirmer()
}

func runMerger(ctx context.Context, opts *mergerOptions, confirmer ui.Confirmer) error {
	start := time.Now()

	s, err := loadSession(opts.platform, opts.workers, "")
	if err != nil {
		return err
	}
	if err := s.authenticate(ctx); err != nil {
		return err
	}

	results := s.evaluate(ctx)
	ro := s.reportOptions()

	_, mergeable, _ := results.Counts()
	if mergeable == 0 {
		s.log.Info(fmt.Sprintf("No %s can be merged", s.source.Noun()))
		return ctx.Err() //nolint:wrapcheck // context cancellation is reported as is
	}

	plain, _ := report.FormatMergeableReport(results, ro)
	printLines(plain)

	ok, err := confirmer.Confirm(ui.MergePrompt(mergeable, s.source.Noun()))
	if err != nil {
		return fmt.Errorf("failed to confirm merge: %w", err)
	}
	if !ok {
		s.log.Info("Merge cancelled")
		return nil
	}

	dispatcher := merge.NewDispatcher(opts.dryRun)
	dispatcher.SetLogger(s.log)
	outcomes := dispatcher.MergeAll(ctx, results, s.source.Merge)

	succeeded, failed := merge.Split(outcomes)
	if opts.dryRun {
		s.log.Info(fmt.Sprintf("Dry run: %d %ss would be merged", len(succeeded), s.source.Noun()))
		return nil
	}

	mergedPlain, mergedHTML := report.FormatMergeReport(outcomes, ro)
	printLines(mergedPlain)
	s.email(ctx, s.recipients(opts.recipients), mergeSubject, mergedHTML)

	summary := fmt.Sprintf("%d merged, %d failed (%s)",
		len(succeeded), len(failed), timeutil.FormatDuration(time.Since(start)))
	if len(failed) > 0 {
		s.log.Warn(summary)
	} else {
		s.log.Info(summary)
	}
	return nil
}
