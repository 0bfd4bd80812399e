package main

import (
	"fmt"

	"github.com/spf13/cobra"

	coreerrors "github.com/arpitjain799/jsonschema/core/errors"
	"github.com/arpitjain799/jsonschema/core/remotes"
)

var remotesCmd = &cobra.Command{
	Use:   "remotes",
	Short: "Emit the URL-to-document fixture mapping on stdout",
	RunE: func(cmd *cobra.Command, _ []string) error {
		mapping, problems, err := remotes.LoadMapping(cfg.BaseURL, cfg.RemotesDir)
		if err != nil {
			return coreerrors.Wrap(err, coreerrors.CategoryIOFailure, "")
		}
		if len(problems) > 0 {
			return coreerrors.New(
				fmt.Sprintf("%d remote fixture(s) could not be loaded, first: %s: %s",
					len(problems), problems[0].Path, problems[0].Detail),
				coreerrors.CategoryInvalidInput,
				"run check to see every broken fixture",
			)
		}
		canonical, err := mapping.CanonicalJSON()
		if err != nil {
			return coreerrors.Wrap(err, coreerrors.CategoryInternalFailure, "")
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(canonical))
		return nil
	},
}
