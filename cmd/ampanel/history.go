package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/ampanel/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show locally recorded submissions",
	Args:  cobra.NoArgs,
	RunE:  runHistoryCmd,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of entries (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if cfg.Cache.Path == "" {
		return errors.New("history needs cache.path in the config")
	}
	limit, _ := cmd.Flags().GetInt("limit")

	st, err := store.Open(cfg.Cache.Path)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	entries, err := st.Submissions(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No submissions recorded")
		return nil
	}

	fmt.Fprintf(out, "%-19s %-36s %-7s %-10s %s\n", "SUBMITTED", "TASK", "QUALITY", "TRACKS", "URL")
	fmt.Fprintln(out, strings.Repeat("-", 120))
	for _, e := range entries {
		tracks := "all"
		if len(e.Tracks) > 0 {
			tracks = formatIndexes(e.Tracks)
		}
		fmt.Fprintf(out, "%-19s %-36s %-7s %-10s %s\n",
			e.SubmittedAt.Local().Format("2006-01-02 15:04:05"),
			truncate(e.TaskID, 36),
			e.Quality,
			truncate(tracks, 10),
			e.URL,
		)
	}
	return nil
}
