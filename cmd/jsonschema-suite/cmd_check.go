package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arpitjain799/jsonschema/core/conformance"
	"github.com/arpitjain799/jsonschema/core/corpus"
	"github.com/arpitjain799/jsonschema/core/draft"
	"github.com/arpitjain799/jsonschema/core/leakage"
	"github.com/arpitjain799/jsonschema/core/lint"
	"github.com/arpitjain799/jsonschema/core/remotes"
	"github.com/arpitjain799/jsonschema/core/suiteconfig"
	"github.com/arpitjain799/jsonschema/internal/logging"
)

// errViolations marks a completed run that found corpus defects, as opposed
// to a run that could not complete.
var errViolations = errors.New("corpus check found violations")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run every corpus audit and report all violations",
	Long: "Check lints descriptions, validates file shapes and case schemas, audits\n" +
		"per-draft keyword usage, and verifies the remote fixture mapping. Every\n" +
		"violation in the corpus is reported in one pass; the exit status is\n" +
		"non-zero iff at least one violation was found.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		total := executeChecks(cfg, cmd.OutOrStdout())
		if total > 0 {
			return fmt.Errorf("%d violation(s): %w", total, errViolations)
		}
		return nil
	},
}

// executeChecks runs every audit over the configured corpus, prints each
// violation to out, and returns the total count.
func executeChecks(cfg suiteconfig.Config, out io.Writer) int {
	log := logging.New("check")
	checker := conformance.NewChecker()
	for _, d := range checker.MissingCapabilities() {
		log.Warn("skipping schema checks", "draft", d.String(), "reason", "no validation capability")
	}

	total := 0
	total += checkSuite(log, checker, conformance.PlainSuite, cfg.TestsDir, out)
	total += checkSuite(log, checker, conformance.OutputSuite, cfg.OutputTestsDir, out)
	total += checkRemotes(log, cfg, out)

	if total == 0 {
		log.Info("corpus is clean")
	} else {
		log.Error("corpus check failed", "violations", total)
	}
	return total
}

func checkSuite(log *slog.Logger, checker *conformance.Checker, kind conformance.SuiteKind, root string, out io.Writer) int {
	total := 0
	for _, d := range draft.All() {
		dir := filepath.Join(root, d.String())
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		files, err := corpus.Load(dir)
		if err != nil {
			log.Warn("skipping unreadable directory", "dir", dir, "error", err.Error())
			continue
		}
		for _, v := range lint.All(files) {
			total++
			fmt.Fprintln(out, v)
		}
		for _, v := range checker.CheckSuiteShape(kind, files) {
			total++
			fmt.Fprintln(out, v)
		}
		for _, v := range checker.CheckMetaschema(d, files) {
			total++
			fmt.Fprintln(out, v)
		}
		for _, v := range leakage.Audit(d, files) {
			total++
			fmt.Fprintln(out, v)
		}
	}
	return total
}

func checkRemotes(log *slog.Logger, cfg suiteconfig.Config, out io.Writer) int {
	if _, err := os.Stat(cfg.RemotesDir); os.IsNotExist(err) {
		log.Warn("skipping remote fixtures", "dir", cfg.RemotesDir, "reason", "directory missing")
		return 0
	}
	mapping, problems, err := remotes.LoadMapping(cfg.BaseURL, cfg.RemotesDir)
	if err != nil {
		log.Warn("skipping remote fixtures", "dir", cfg.RemotesDir, "error", err.Error())
		return 0
	}
	total := 0
	for _, p := range problems {
		total++
		fmt.Fprintf(out, "remote: %s: %s\n", p.Path, p.Detail)
	}
	for _, c := range mapping.Collisions() {
		total++
		fmt.Fprintf(out, "remote: %s: %d fixtures collide on one URL (same content: %t): %v\n",
			c.URL, len(c.Paths), c.SameContent, c.Paths)
	}
	return total
}
