package main

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/arpitjain799/jsonschema/core/corpus"
	"github.com/arpitjain799/jsonschema/core/draft"
	coreerrors "github.com/arpitjain799/jsonschema/core/errors"
)

var flattenFlags struct {
	randomize bool
}

var flattenCmd = &cobra.Command{
	Use:   "flatten <version>",
	Short: "Emit one draft's cases as a single JSON array on stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cases, err := flattenDraft(cfg.TestsDir, args[0])
		if err != nil {
			return err
		}
		if flattenFlags.randomize {
			shuffleCases(cases)
		}
		encoded, err := json.MarshalIndent(cases, "", "    ")
		if err != nil {
			return coreerrors.Wrap(fmt.Errorf("encode cases: %w", err), coreerrors.CategoryInternalFailure, "")
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		return nil
	},
}

func init() {
	flattenCmd.Flags().BoolVar(&flattenFlags.randomize, "randomize", false, "Shuffle the flattened case order")
}

// flattenDraft loads every case under one draft's directory, in file order.
func flattenDraft(testsDir, version string) ([]corpus.Case, error) {
	d, ok := draft.FromDir(version)
	if !ok {
		return nil, coreerrors.New(
			fmt.Sprintf("unknown version %q", version),
			coreerrors.CategoryInvalidInput,
			fmt.Sprintf("known versions: %v", draft.All()),
		)
	}
	files, err := corpus.Load(filepath.Join(testsDir, d.String()))
	if err != nil {
		return nil, coreerrors.Wrap(err, coreerrors.CategoryIOFailure, "")
	}
	var cases []corpus.Case
	for _, file := range files {
		if file.Err != nil {
			return nil, coreerrors.Wrap(
				fmt.Errorf("%s: %w", file.Path, file.Err),
				coreerrors.CategoryInvalidInput,
				"run check to see every malformed fixture",
			)
		}
		cases = append(cases, file.Cases...)
	}
	return cases, nil
}

func shuffleCases(cases []corpus.Case) {
	rand.Shuffle(len(cases), func(i, j int) {
		cases[i], cases[j] = cases[j], cases[i]
	})
}
