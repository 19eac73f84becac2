// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/rulecheck/internal/check"
	"github.com/pdiddy/rulecheck/internal/metrics"
	"github.com/pdiddy/rulecheck/internal/render"
	"github.com/pdiddy/rulecheck/internal/watch"
	"github.com/pdiddy/rulecheck/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report document statements with no matching artifact identifier",
	Long: `Check extracts identifiers from the artifacts (constant names, static
method names, Section references and keyword-bearing string literals) and
rule-like statements from the document, then lists every statement that no
identifier matches by case-insensitive substring containment.

Artifacts may be glob patterns such as "src/**/ConversionRules.java". A missing
document is always an error; a missing artifact is an error unless
--allow-missing-artifact is set, in which case every statement is unmatched.

With --watch the check re-runs whenever the document or an artifact changes.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := checkConfig()
	if err != nil {
		return err
	}
	out, err := outputConfig()
	if err != nil {
		return err
	}
	wcfg := watchConfig()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !wcfg.Enabled {
		return checkOnce(ctx, cfg, out, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	if err := checkOnce(ctx, cfg, out, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil && !errors.Is(err, errCoverageGaps) {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
	}

	paths, err := watchPaths(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl-C to stop)\n", strings.Join(paths, ", "))
	return watch.Watch(ctx, paths, wcfg.Debounce, logger, func(ctx context.Context, changed []string) {
		fmt.Fprintf(cmd.ErrOrStderr(), "\nChange detected: %s\n", strings.Join(changed, ", "))
		if err := checkOnce(ctx, cfg, out, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil && !errors.Is(err, errCoverageGaps) {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
	})
}

// checkOnce runs one check, writes the report and metrics, and applies
// --fail-on-unmatched.
func checkOnce(ctx context.Context, cfg types.CheckConfig, out types.OutputConfig, stdout, stderr io.Writer) error {
	fmt.Fprintf(stderr, "Checking %s against %s...\n", cfg.Document, strings.Join(cfg.Artifacts, ", "))

	result, err := check.Run(ctx, cfg, check.Deps{
		Reader: defaultReader(),
		Logger: logger,
	})
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(stderr, "warning: %s\n", w)
	}

	if err := writeReport(out, result, stdout); err != nil {
		return err
	}

	if out.MetricsFile != "" {
		if err := metrics.WriteTextfile(out.MetricsFile, result); err != nil {
			return err
		}
		logger.Debug("metrics written", zap.String("path", out.MetricsFile))
	}

	if out.FailOnUnmatched && !result.Covered() {
		return fmt.Errorf("%w: %d unmatched statement(s)", errCoverageGaps, len(result.Unmatched))
	}
	return nil
}

func writeReport(out types.OutputConfig, result *types.CheckResult, stdout io.Writer) (err error) {
	w := stdout
	if out.Path != "" {
		f, createErr := os.Create(out.Path)
		if createErr != nil {
			return fmt.Errorf("creating report %s: %w", out.Path, createErr)
		}
		defer func() {
			if closeErr := f.Close(); err == nil && closeErr != nil {
				err = fmt.Errorf("closing report %s: %w", out.Path, closeErr)
			}
		}()
		w = f
	}
	return render.Write(w, out.Format, result)
}

// watchPaths lists the document and every artifact that currently exists.
func watchPaths(cfg types.CheckConfig) ([]string, error) {
	artifacts, missing, err := check.ExpandArtifacts(cfg.Artifacts)
	if err != nil {
		return nil, err
	}
	paths := append([]string{cfg.Document}, artifacts...)
	for _, m := range missing {
		if !strings.ContainsAny(m, "*?[{") {
			paths = append(paths, m)
		}
	}
	return paths, nil
}

func init() {
	f := checkCmd.Flags()
	f.StringSlice("artifact", []string{defaultArtifact}, "artifact file or doublestar glob (repeatable)")
	f.String("format", "text", "report format: text, markdown, json, or yaml")
	f.StringP("output", "o", "", "report file (default: stdout)")
	f.String("matcher", "linear", "reconciler: linear or sqlite")
	f.Bool("allow-missing-artifact", false, "treat a missing artifact as a warning with no identifiers")
	f.String("metrics-file", "", "write Prometheus textfile metrics to this path")
	f.Bool("fail-on-unmatched", false, "exit with status 2 when any statement is unmatched")
	f.Bool("watch", false, "re-run when the document or an artifact changes")
	f.Duration("debounce", watch.DefaultDebounce, "quiet period before a watched change re-runs the check")

	for _, name := range []string{"artifact", "format", "output", "matcher", "allow-missing-artifact", "metrics-file", "fail-on-unmatched", "watch", "debounce"} {
		_ = viper.BindPFlag(name, f.Lookup(name))
	}

	rootCmd.AddCommand(checkCmd)
}
