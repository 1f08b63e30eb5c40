package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/ampanel/internal/backend"
	"github.com/vmunix/ampanel/internal/panel"
)

const taskListHeight = 15

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live task dashboard",
	Long: `Live task dashboard.

The task list refreshes every poll.interval. Logs go to log.file when
one is configured and are discarded otherwise.`,
	Args: cobra.NoArgs,
	RunE: runWatchCmd,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
	failedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E05656"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#56C271"))
	modalStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
)

type (
	tasksMsg  []panel.TaskRow
	alertMsg  string
	detailMsg panel.TaskDetail
	statusMsg string
)

// watchUI forwards controller output into the running program.
type watchUI struct {
	send func(tea.Msg)
}

func (u *watchUI) Alert(msg string)                  { u.send(alertMsg(msg)) }
func (u *watchUI) RenderMetadata(panel.MetadataView) {}
func (u *watchUI) RenderTasks(rows []panel.TaskRow)  { u.send(tasksMsg(rows)) }
func (u *watchUI) ShowDetail(d panel.TaskDetail)     { u.send(detailMsg(d)) }

type watchModel struct {
	ctx    context.Context
	ctrl   *panel.Controller
	server string
	bar    progress.Model

	rows      []panel.TaskRow
	cursor    int
	refreshed time.Time
	status    string

	alert  string
	detail *panel.TaskDetail
}

func newWatchModel(ctx context.Context, ctrl *panel.Controller, server string) *watchModel {
	return &watchModel{
		ctx:    ctx,
		ctrl:   ctrl,
		server: server,
		bar:    newProgressBar(20),
	}
}

func (m *watchModel) Init() tea.Cmd {
	return nil
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksMsg:
		m.setRows(msg)
		return m, nil
	case alertMsg:
		m.alert = string(msg)
		return m, nil
	case detailMsg:
		d := panel.TaskDetail(msg)
		m.detail = &d
		return m, nil
	case statusMsg:
		m.status = string(msg)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.alert != "" || m.detail != nil {
			return m.updateModal(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

// setRows replaces the list, keeping the cursor on the same task when it survives.
func (m *watchModel) setRows(rows []panel.TaskRow) {
	var selected string
	if row, ok := m.current(); ok {
		selected = row.ID
	}
	m.rows = rows
	m.refreshed = time.Now()

	m.cursor = min(m.cursor, max(len(rows)-1, 0))
	for i, r := range rows {
		if r.ID == selected {
			m.cursor = i
			break
		}
	}
}

func (m *watchModel) current() (panel.TaskRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return panel.TaskRow{}, false
	}
	return m.rows[m.cursor], true
}

func (m *watchModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q", " ":
		m.alert = ""
		m.detail = nil
	}
	return m, nil
}

func (m *watchModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(len(m.rows)-1, 0)
	case "enter", "d":
		if row, ok := m.current(); ok {
			return m, m.run("", func(ctx context.Context) error {
				_, err := m.ctrl.Detail(ctx, row.ID)
				return err
			})
		}
	case "r":
		row, ok := m.current()
		if !ok {
			return m, nil
		}
		if row.RetryDisabled {
			m.status = "Task is running, retry is disabled"
			return m, nil
		}
		return m, m.run("Requeued "+row.ID, func(ctx context.Context) error {
			return m.ctrl.Retry(ctx, row.ID)
		})
	case "c":
		if row, ok := m.current(); ok {
			return m, m.run("Cancel requested for "+row.ID, func(ctx context.Context) error {
				return m.ctrl.Cancel(ctx, row.ID)
			})
		}
	case "x":
		if row, ok := m.current(); ok {
			return m, m.run("Deleted "+row.ID, func(ctx context.Context) error {
				return m.ctrl.Delete(ctx, row.ID)
			})
		}
	case "C":
		return m, func() tea.Msg {
			n, err := m.ctrl.ClearCompleted(m.ctx)
			if err != nil {
				return nil
			}
			return statusMsg(fmt.Sprintf("Cleared %d finished task(s)", n))
		}
	}
	return m, nil
}

// run performs a controller action off the update loop. Failures are already
// alerted through the UI, so only success reports a status.
func (m *watchModel) run(done string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(m.ctx); err != nil || done == "" {
			return nil
		}
		return statusMsg(done)
	}
}

func (m *watchModel) View() string {
	if m.alert != "" {
		return modalStyle.Render(failedStyle.Render("Error") + "\n\n" + m.alert + "\n\n" + dimStyle.Render("enter to dismiss"))
	}
	if m.detail != nil {
		return modalStyle.Render(titleStyle.Render("Task "+m.detail.ID) + "\n" + m.detail.URL + "\n\n" + m.detail.String() + "\n\n" + dimStyle.Render("enter to close"))
	}
	return m.listView()
}

func (m *watchModel) listView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ampanel") + "  " + dimStyle.Render(m.server) + "\n")
	if m.refreshed.IsZero() {
		b.WriteString(dimStyle.Render("Loading tasks...") + "\n\n")
	} else {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d task(s), updated %s", len(m.rows), m.refreshed.Format("15:04:05"))) + "\n\n")
	}

	start, end := listWindow(len(m.rows), m.cursor, taskListHeight)
	for i := start; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s %s %3d%%  %s", cursor, statusLabel(r.Status), m.bar.ViewAs(float64(r.Progress)/100), r.Progress, truncate(r.URL, 60))
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
		if i == m.cursor && r.Message != "" {
			b.WriteString("    " + dimStyle.Render(truncate(r.Message, 90)) + "\n")
		}
	}
	if len(m.rows) == 0 && !m.refreshed.IsZero() {
		b.WriteString("No tasks\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(dimStyle.Render("Keys: j/k move | enter details | r retry | c cancel | x delete | C clear finished | q quit"))
	return b.String()
}

func statusLabel(status string) string {
	label := fmt.Sprintf("%-10s", status)
	switch status {
	case backend.StatusFailed:
		return failedStyle.Render(label)
	case backend.StatusSucceeded:
		return doneStyle.Render(label)
	default:
		return label
	}
}

func listWindow(total, cursor, size int) (int, int) {
	if total <= 0 {
		return 0, 0
	}
	if size <= 0 || total <= size {
		return 0, total
	}

	start := max(cursor-size/2, 0)
	if start+size > total {
		start = total - size
	}
	return start, start + size
}

func runWatchCmd(cmd *cobra.Command, _ []string) error {
	// The terminal belongs to the dashboard.
	if cfg.Log.File == "" {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	ui := &watchUI{}
	a := newAppWithUI(ui)
	defer a.Close()

	model := newWatchModel(ctx, a.ctrl, cfg.Server.URL)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	ui.send = program.Send

	poller := panel.NewPoller(a.ctrl.RefreshTasks, panel.PollerConfig{
		Interval:     cfg.Poll.Interval,
		Timeout:      cfg.Server.Timeout,
		OverlapGuard: cfg.Poll.OverlapGuard,
	}, logger.With("component", "poller"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return poller.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		if _, err := program.Run(); err != nil {
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("run dashboard: %w", err)
		}
		return nil
	})

	err := g.Wait()
	logger.Debug("dashboard closed", "skipped_ticks", poller.Skipped())
	return err
}
