package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/spf13/cobra"

	"github.com/vmunix/ampanel/internal/backend"
	"github.com/vmunix/ampanel/internal/panel"
)

var tasksCmd = &cobra.Command{
	Use:     "tasks",
	Aliases: []string{"ls"},
	Short:   "List download tasks",
	RunE:    runTasksListCmd,
}

var tasksShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show task status, message and logs",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksShowCmd,
}

var tasksRetryCmd = &cobra.Command{
	Use:   "retry <id>",
	Short: "Requeue a failed or finished task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksRetryCmd,
}

var tasksCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Ask the backend to stop a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksCancelCmd,
}

var tasksRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Remove a task that is not running",
	Args:    cobra.ExactArgs(1),
	RunE:    runTasksRemoveCmd,
}

var tasksClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all finished tasks",
	Args:  cobra.NoArgs,
	RunE:  runTasksClearCmd,
}

var tasksFollowCmd = &cobra.Command{
	Use:   "follow <id>",
	Short: "Stream a task's progress until it finishes",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksFollowCmd,
}

func init() {
	tasksCmd.Flags().StringP("status", "s", "", "Only show tasks with this status")

	tasksCmd.AddCommand(tasksShowCmd)
	tasksCmd.AddCommand(tasksRetryCmd)
	tasksCmd.AddCommand(tasksCancelCmd)
	tasksCmd.AddCommand(tasksRemoveCmd)
	tasksCmd.AddCommand(tasksClearCmd)
	tasksCmd.AddCommand(tasksFollowCmd)
	rootCmd.AddCommand(tasksCmd)
}

func runTasksListCmd(cmd *cobra.Command, _ []string) error {
	a := newApp(cmd)
	defer a.Close()

	if err := a.ctrl.RefreshTasks(cmd.Context()); err != nil {
		return err
	}

	status, _ := cmd.Flags().GetString("status")
	rows := filterRows(a.ui.Rows(), status)

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, rows)
	}
	printTaskRows(out, rows)
	return nil
}

func filterRows(rows []panel.TaskRow, status string) []panel.TaskRow {
	if status == "" {
		return rows
	}
	out := make([]panel.TaskRow, 0, len(rows))
	for _, r := range rows {
		if strings.EqualFold(r.Status, status) {
			out = append(out, r)
		}
	}
	return out
}

func newProgressBar(width int) progress.Model {
	return progress.New(
		progress.WithWidth(width),
		progress.WithSolidFill("#7D56F4"),
		progress.WithoutPercentage(),
	)
}

func printTaskRows(w io.Writer, rows []panel.TaskRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No tasks")
		return
	}

	bar := newProgressBar(20)
	fmt.Fprintf(w, "%-36s %-10s %-7s %-20s %5s  %s\n", "ID", "STATUS", "QUALITY", "PROGRESS", "", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 120))
	for _, r := range rows {
		fmt.Fprintf(w, "%-36s %-10s %-7s %s %4d%%  %s\n",
			truncate(r.ID, 36),
			r.Status,
			r.Quality,
			bar.ViewAs(float64(r.Progress)/100),
			r.Progress,
			truncate(r.URL, 60),
		)
		if r.Message != "" {
			fmt.Fprintf(w, "%-36s %s\n", "", truncate(r.Message, 80))
		}
	}
	fmt.Fprintf(w, "\n%d task(s)\n", len(rows))
}

func runTasksShowCmd(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)
	defer a.Close()

	detail, err := a.ctrl.Detail(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, detail)
	}
	fmt.Fprintf(out, "Task %s\n", detail.ID)
	fmt.Fprintf(out, "URL: %s\n", detail.URL)
	fmt.Fprintln(out, detail.String())
	return nil
}

func runTasksRetryCmd(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)
	defer a.Close()

	if err := a.ctrl.Retry(cmd.Context(), args[0]); err != nil {
		return err
	}
	return printAction(cmd.OutOrStdout(), "requeued", args[0])
}

func runTasksCancelCmd(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)
	defer a.Close()

	if err := a.ctrl.Cancel(cmd.Context(), args[0]); err != nil {
		return err
	}
	return printAction(cmd.OutOrStdout(), "cancel requested", args[0])
}

func runTasksRemoveCmd(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)
	defer a.Close()

	if err := a.ctrl.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	return printAction(cmd.OutOrStdout(), "deleted", args[0])
}

func runTasksClearCmd(cmd *cobra.Command, _ []string) error {
	a := newApp(cmd)
	defer a.Close()

	n, err := a.ctrl.ClearCompleted(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, map[string]int{"deleted": n})
	}
	fmt.Fprintf(out, "Cleared %d finished task(s)\n", n)
	return nil
}

func printAction(w io.Writer, action, id string) error {
	if jsonOutput {
		return printJSON(w, map[string]string{"id": id, "status": action})
	}
	fmt.Fprintf(w, "Task %s %s\n", id, action)
	return nil
}

func runTasksFollowCmd(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)
	defer a.Close()

	out := cmd.OutOrStdout()
	bar := newProgressBar(30)

	var last backend.Task
	err := a.client.Stream(cmd.Context(), args[0], func(t backend.Task) error {
		last = t
		if jsonOutput {
			return printJSON(out, t)
		}
		p := panel.ClampProgress(t.Progress)
		fmt.Fprintf(out, "\r%s %3d%% %-10s %s", bar.ViewAs(float64(p)/100), p, t.Status, truncate(t.Message, 50))
		return nil
	})
	if !jsonOutput && last.ID != "" {
		fmt.Fprintln(out)
	}
	if err != nil {
		if errors.Is(err, cmd.Context().Err()) {
			return nil
		}
		return err
	}

	if last.Status == backend.StatusFailed {
		return fmt.Errorf("task %s failed: %s", args[0], last.Message)
	}
	return nil
}
