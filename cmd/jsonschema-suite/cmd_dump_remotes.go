package main

import (
	"github.com/spf13/cobra"

	"github.com/arpitjain799/jsonschema/core/remotes"
	"github.com/arpitjain799/jsonschema/internal/logging"
)

var dumpRemotesFlags struct {
	update bool
	outDir string
}

var dumpRemotesCmd = &cobra.Command{
	Use:   "dump_remotes",
	Short: "Materialize the remote fixture tree into a directory",
	Long: "Copies the remote fixture tree to the output directory. An existing\n" +
		"non-empty target is refused unless --update is given, in which case the\n" +
		"target is removed wholesale and rebuilt.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := remotes.Dump(cfg.RemotesDir, dumpRemotesFlags.outDir, dumpRemotesFlags.update); err != nil {
			return err
		}
		logging.New("remotes").Info("remote fixtures dumped", "out", dumpRemotesFlags.outDir)
		return nil
	},
}

func init() {
	dumpRemotesCmd.Flags().BoolVar(&dumpRemotesFlags.update, "update", false, "Replace an existing target wholesale")
	dumpRemotesCmd.Flags().StringVar(&dumpRemotesFlags.outDir, "out-dir", "remotes-dump", "Target directory")
}
