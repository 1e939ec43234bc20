// Package main provides the entry point for the auto-merger CLI tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sgaunet/auto-merger/pkg/config"
	"github.com/spf13/cobra"

	_ "golang.org/x/crypto/x509roots/fallback" // CA roots for minimal container images
)

const (
	exitFailure       = 1
	exitConfiguration = 2
)

var (
	logLevel   string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "auto-merger",
	Short: "Report on and merge the open pull/merge requests of an organization",
	Long: `auto-merger evaluates the open pull requests of a GitHub organization or the
merge requests of a GitLab group against a merge policy (blocking labels,
approval labels, approval count and minimum age). It reports blocked,
mergeable and awaiting requests and can merge the eligible ones.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "",
		"Set log level (debug, info, warn, error); defaults to info, or debug when the config enables it")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to the configuration file (default ~/"+config.DefaultFileName+")")

	rootCmd.AddCommand(
		newCheckerCmd(config.PlatformGitHub, "pr-checker", "Report on the pull requests of a GitHub organization"),
		newCheckerCmd(config.PlatformGitLab, "gitlab-checker", "Report on the merge requests of a GitLab group"),
		newMergerCmd(),
	)
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return 0
}

func exitCode(err error) int {
	if errors.Is(err, config.ErrConfiguration) {
		return exitConfiguration
	}
	return exitFailure
}
