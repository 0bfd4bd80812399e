// jsonschema-suite manages the conformance corpus: it audits the test files,
// flattens draft directories, and materializes or serves the remote fixtures.
//
// Usage:
//
//	jsonschema-suite check
//	jsonschema-suite flatten <version> [--randomize]
//	jsonschema-suite remotes
//	jsonschema-suite dump_remotes [--update] [--out-dir=PATH]
//	jsonschema-suite serve [--port=N]
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	coreerrors "github.com/arpitjain799/jsonschema/core/errors"
	"github.com/arpitjain799/jsonschema/core/suiteconfig"
	"github.com/arpitjain799/jsonschema/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

const (
	exitOK                = 0
	exitViolations        = 1
	exitInvalidInput      = 2
	exitIOFailure         = 3
	exitDependencyMissing = 4
	exitConflict          = 5
)

var rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

// cfg is resolved once in the persistent pre-run and read by every command.
var cfg suiteconfig.Config

var rootCmd = &cobra.Command{
	Use:   "jsonschema-suite",
	Short: "Manage and audit the cross-implementation conformance corpus",
	Long: "jsonschema-suite keeps the conformance corpus trustworthy: it lints test\n" +
		"descriptions, validates every schema against its draft's metaschema, audits\n" +
		"keyword usage against per-draft ledgers, and manages the remote fixtures\n" +
		"that reference-resolution tests fetch over HTTP.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logging.Init(rootFlags.logLevel, rootFlags.logFormat, nil)
		var err error
		cfg, err = suiteconfig.Load(rootFlags.configPath)
		return err
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", suiteconfig.DefaultPath, "Path to the suite layout config")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(flattenCmd)
	rootCmd.AddCommand(remotesCmd)
	rootCmd.AddCommand(dumpRemotesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if hint := coreerrors.HintOf(err); hint != "" {
			fmt.Fprintln(os.Stderr, "hint:", hint)
		}
		os.Exit(exitCodeFor(err))
	}
}

func exitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, errViolations) {
		return exitViolations
	}
	switch coreerrors.CategoryOf(err) {
	case coreerrors.CategoryInvalidInput:
		return exitInvalidInput
	case coreerrors.CategoryIOFailure:
		return exitIOFailure
	case coreerrors.CategoryDependencyMissing:
		return exitDependencyMissing
	case coreerrors.CategoryConflict:
		return exitConflict
	default:
		return exitInvalidInput
	}
}
