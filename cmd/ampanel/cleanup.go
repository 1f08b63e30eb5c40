package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vmunix/ampanel/internal/backend"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Empty the service's download folders",
	Long: `Delete everything inside the download service's ALAC, AAC and Atmos
folders. The service refuses while any task is running.`,
	Args: cobra.NoArgs,
	RunE: runCleanupCmd,
}

func init() {
	cleanupCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanupCmd(cmd *cobra.Command, _ []string) error {
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		ok, err := confirm("Empty the download folders?", "Every downloaded file on "+cfg.Server.URL+" is deleted.")
		if err != nil {
			return fmt.Errorf("%w (use --yes to skip confirmation)", err)
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
			return nil
		}
	}

	a := newApp(cmd)
	defer a.Close()

	res, err := a.ctrl.CleanupDownloads(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, res)
	}
	printCleanup(out, res)
	return nil
}

func printCleanup(w io.Writer, res *backend.CleanupResult) {
	for _, f := range res.Folders {
		switch {
		case f.Error != "" && f.Item != "":
			fmt.Fprintf(w, "  %-10s %s: %s\n", f.Folder, f.Item, f.Error)
		case f.Error != "":
			fmt.Fprintf(w, "  %-10s error: %s\n", f.Folder, f.Error)
		case f.Skipped:
			fmt.Fprintf(w, "  %-10s skipped (%s)\n", f.Folder, f.Reason)
		default:
			fmt.Fprintf(w, "  %-10s %d file(s), %d dir(s)\n", f.Folder, f.DeletedFiles, f.DeletedDirs)
		}
	}
	fmt.Fprintf(w, "Deleted %d file(s) and %d dir(s)\n", res.DeletedFiles, res.DeletedDirs)
}
