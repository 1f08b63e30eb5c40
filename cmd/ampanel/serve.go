package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/ampanel/internal/panel"
	"github.com/vmunix/ampanel/internal/server"
	"github.com/vmunix/ampanel/internal/web"
)

const pruneInterval = time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web panel",
	Long: `Serve the web panel.

Every browser gets its own selection state. Task submissions are
recorded in the local history like CLI submissions.`,
	Args: cobra.NoArgs,
	RunE: runServeCmd,
}

func init() {
	serveCmd.Flags().String("listen", "", "Listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	addr := cfg.Web.Listen
	if l, _ := cmd.Flags().GetString("listen"); l != "" {
		addr = l
	}

	a := newApp(cmd)
	defer a.Close()

	opts := web.Options{
		Tasks: panel.Options{
			Quality:    cfg.Tasks.Quality,
			SongOnly:   cfg.Tasks.SongOnly,
			MaxRetries: cfg.Tasks.MaxRetries,
		},
		PollInterval: cfg.Poll.Interval,
	}

	var pruner server.Pruner
	if a.store != nil {
		opts.OnSubmit = recordSubmission(a.store)
		pruner = a.store
	}

	handler := web.NewServer(a.api, opts, logger.With("component", "web")).Handler()
	runner := server.NewRunner(handler, pruner, server.Config{
		Listen:        addr,
		PruneInterval: pruneInterval,
	}, logger.With("component", "server", "backend", cfg.Server.URL))
	return runner.Run(cmd.Context())
}
