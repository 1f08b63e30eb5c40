package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vmunix/ampanel/internal/config"
	"github.com/vmunix/ampanel/internal/panel"
)

var version = "dev"

var (
	serverURL  string
	configPath string
	jsonOutput bool
	quiet      bool
)

// Set by PersistentPreRunE.
var (
	cfg    *config.Config
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// skipConfigAnnotation marks commands that must run without loading a config.
const skipConfigAnnotation = "ampanel/skip-config"

var rootCmd = &cobra.Command{
	Use:   "ampanel",
	Short: "Control panel for a media download backend",
	Long: `ampanel - control panel for a media download backend

Paste an album or artist URL, preview its tracks or albums, pick what
to fetch, submit download tasks and watch them progress.

The downloading itself is done by the backend at --server.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadRuntime,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		// Alerts were already printed by the UI.
		if !panel.IsAlerted(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Backend URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("ampanel {{.Version}}\n")
}

func loadRuntime(cmd *cobra.Command, _ []string) error {
	if skipsConfig(cmd) {
		cfg = config.Default()
		return nil
	}

	c, path, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	if serverURL != "" {
		c.Server.URL = strings.TrimRight(serverURL, "/")
	}
	cfg = c

	l, err := newLogger(c.Log, cmd.ErrOrStderr(), quiet)
	if err != nil {
		return err
	}
	logger = l
	logger.Debug("config loaded", "path", path, "server", cfg.Server.URL)
	return nil
}

func skipsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipConfigAnnotation] == "true" {
			return true
		}
	}
	return false
}
