package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/vmunix/ampanel/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configInitCmd = &cobra.Command{
	Use:         "init [path]",
	Short:       "Write the default configuration file",
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE:        runConfigInit,
}

var configTestCmd = &cobra.Command{
	Use:         "test [path]",
	Short:       "Validate configuration file",
	Long:        "Validates config syntax, values, and environment variable substitution without contacting the backend.",
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE:        runConfigTest,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configTestCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			if errors.Is(err, config.ErrNotFound) {
				return errors.New("no config file found (run 'ampanel config init')")
			}
			return err
		}
		path = found
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating %s...\n\n", path)

	c, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(out, configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(out, c)
	fmt.Fprintln(out, "\nConfiguration valid!")
	return nil
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, c *config.Config) {
	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  Backend:    %s (timeout %s)\n", c.Server.URL, c.Server.Timeout)
	fmt.Fprintf(w, "  Tasks:      quality=%s song_only=%t max_retries=%d\n", c.Tasks.Quality, c.Tasks.SongOnly, c.Tasks.MaxRetries)
	fmt.Fprintf(w, "  Polling:    every %s (overlap guard: %t)\n", c.Poll.Interval, c.Poll.OverlapGuard)
	if c.Cache.MetadataTTL > 0 {
		fmt.Fprintf(w, "  Cache:      %s (metadata ttl %s)\n", c.Cache.Path, c.Cache.MetadataTTL)
	} else {
		fmt.Fprintln(w, "  Cache:      disabled")
	}
	logTo := "stderr"
	if c.Log.File != "" {
		logTo = c.Log.File
	}
	fmt.Fprintf(w, "  Logging:    %s/%s -> %s\n", c.Log.Level, c.Log.Format, logTo)
	fmt.Fprintf(w, "  Web panel:  %s\n", c.Web.Listen)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, cfg)
	}
	return toml.NewEncoder(out).Encode(cfg)
}
