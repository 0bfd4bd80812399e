package main

import (
	"fmt"

	"github.com/spf13/cobra"

	coreerrors "github.com/arpitjain799/jsonschema/core/errors"
	"github.com/arpitjain799/jsonschema/core/remotes"
)

var serveFlags struct {
	port int
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the remote fixture tree over HTTP",
	Long: "Serves one route per remote fixture, matching the URLs that remote-ref\n" +
		"test schemas expect. The fixture tree is read once at startup and is\n" +
		"immutable for the lifetime of the server.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		mapping, problems, err := remotes.LoadMapping(cfg.BaseURL, cfg.RemotesDir)
		if err != nil {
			return coreerrors.Wrap(err, coreerrors.CategoryIOFailure, "")
		}
		if len(problems) > 0 {
			return coreerrors.New(
				fmt.Sprintf("%d remote fixture(s) could not be loaded", len(problems)),
				coreerrors.CategoryInvalidInput,
				"run check to see every broken fixture",
			)
		}
		port := serveFlags.port
		if port == 0 {
			port = cfg.ServePort
		}
		err = remotes.Serve(fmt.Sprintf(":%d", port), mapping)
		return coreerrors.Wrap(err, coreerrors.CategoryIOFailure, "is the port already in use?")
	},
}

func init() {
	serveCmd.Flags().IntVar(&serveFlags.port, "port", 0, "Listen port (defaults to the configured serve_port)")
}
