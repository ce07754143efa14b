// Package ui drives the terminal dashboard: one bubbletea event loop owns the
// snapshot engine and the selection state, so ticks and key events never
// interleave.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vmtop/internal/control"
	"vmtop/internal/metrics"
	"vmtop/internal/models"
)

const fetchTimeout = 5 * time.Second

// Source supplies raw per-VM counter snapshots and a liveness probe for the
// underlying session.
type Source interface {
	Fetch(ctx context.Context) ([]models.VMStats, error)
	Healthy() error
}

// Commander issues lifecycle commands for the selected row.
type Commander interface {
	Dispatch(action control.Action, row *models.Row) error
}

type tickMsg time.Time

type statsMsg []models.VMStats

// fetchErrMsg skips the tick: the previous rows stay on screen.
type fetchErrMsg struct{ err error }

// connLostMsg is fatal: the session is gone and there is no reconnect policy.
type connLostMsg struct{ err error }

type actionResultMsg struct {
	action control.Action
	name   string
	err    error
}

type App struct {
	source    Source
	commander Commander
	logger    *slog.Logger

	engine    *metrics.Engine
	selection *Selection
	interval  time.Duration

	width  int
	height int

	status    string
	statusErr bool

	cpuProgress progress.Model

	err error
}

func NewApp(source Source, commander Commander, interval time.Duration, logger *slog.Logger) *App {
	return &App{
		source:      source,
		commander:   commander,
		logger:      logger,
		engine:      metrics.NewEngine(),
		selection:   NewSelection(),
		interval:    interval,
		cpuProgress: progress.New(progress.WithDefaultGradient()),
	}
}

// Err reports the fatal error that ended the program, if any.
func (a *App) Err() error {
	return a.err
}

func (a *App) Init() tea.Cmd {
	return a.fetchStats()
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(a.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchStats runs the blocking stats RPC off the event loop. The next tick is
// scheduled only once its message has been applied, so at most one fetch is
// ever outstanding.
func (a *App) fetchStats() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		batch, err := a.source.Fetch(ctx)
		if err != nil {
			if herr := a.source.Healthy(); herr != nil {
				return connLostMsg{err: fmt.Errorf("hypervisor session lost: %w", herr)}
			}
			return fetchErrMsg{err: err}
		}
		return statsMsg(batch)
	}
}

func (a *App) dispatch(action control.Action) tea.Cmd {
	var target *models.Row
	name := ""
	if row, ok := a.selection.Selected(); ok {
		r := row
		target = &r
		name = row.Identity.Name
	}
	return func() tea.Msg {
		err := a.commander.Dispatch(action, target)
		return actionResultMsg{action: action, name: name, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.cpuProgress.Width = min(40, max(10, a.width-30))
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return a, tea.Quit
		case "up", "k":
			a.selection.Prev()
		case "down", "j":
			a.selection.Next()
		case "x":
			action := control.ActionStart
			if row, ok := a.selection.Selected(); ok {
				action = control.Toggle(row)
			}
			return a, a.dispatch(action)
		case "s":
			return a, a.dispatch(control.ActionSnapshot)
		}
		return a, nil

	case tickMsg:
		return a, a.fetchStats()

	case statsMsg:
		rows := a.engine.Ingest(msg)
		a.selection.Ingest(rows)
		return a, a.tick()

	case fetchErrMsg:
		a.logger.Warn("stats refresh failed", "error", msg.err)
		a.setStatus(fmt.Sprintf("refresh failed: %v", msg.err), true)
		return a, a.tick()

	case connLostMsg:
		a.logger.Error("hypervisor session lost", "error", msg.err)
		a.err = msg.err
		return a, tea.Quit

	case actionResultMsg:
		if msg.err != nil {
			a.logger.Warn("command failed", "action", msg.action.String(), "vm", msg.name, "error", msg.err)
			a.setStatus(fmt.Sprintf("%s failed: %v", msg.action, msg.err), true)
		} else {
			a.setStatus(fmt.Sprintf("%s issued for %s", msg.action, msg.name), false)
		}
		return a, nil
	}

	return a, nil
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	title := TitleStyle.Width(a.width).Render("vmtop")
	overview := a.renderOverview()
	status := a.renderStatus()
	help := HelpStyle.Render("(q) quit | (↑/↓) move | (x) start / stop vm | (s) snapshot vm")

	// Everything except the table body: the rendered sections, the three
	// blank separators, and the table's own header line.
	chrome := lipgloss.Height(title) + lipgloss.Height(overview) +
		lipgloss.Height(status) + lipgloss.Height(help) + 3 + 1
	table := a.renderTable(max(1, a.height-chrome))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		overview,
		"",
		table,
		"",
		status,
		help,
	)
}

func (a *App) renderOverview() string {
	row, ok := a.selection.Selected()
	if !ok {
		return OverviewStyle.Width(a.width - 4).Render("No virtual machines found")
	}

	statusStyle := StatusOffStyle
	if row.Status == models.StatusOn {
		statusStyle = StatusOnStyle
	}

	content := []string{
		HeaderStyle.Render("VM statistics"),
		"",
		fmt.Sprintf("%s %s", LabelStyle.Render("Name:"), ValueStyle.Render(row.Identity.Name)),
		fmt.Sprintf("%s %s", LabelStyle.Render("Status:"), statusStyle.Render(row.Status)),
		fmt.Sprintf("%s %.2f%%", LabelStyle.Render("CPU Usage:"), row.CPUPercent),
		a.cpuProgress.ViewAs(row.CPUPercent / 100.0),
		fmt.Sprintf("%s %s", LabelStyle.Render("Mem Usage:"), ValueStyle.Render(row.MemDisplay)),
		"",
		fmt.Sprintf("%s %s", LabelStyle.Render("Network:"), ValueStyle.Render(row.NetName)),
		fmt.Sprintf("%s %.2f", LabelStyle.Render("MB received:"), row.NetRxKiB),
		fmt.Sprintf("%s %.2f", LabelStyle.Render("MB sent:"), row.NetTxKiB),
		"",
		fmt.Sprintf("%s %s", LabelStyle.Render("Disk:"), ValueStyle.Render(row.DiskName)),
		fmt.Sprintf("%s %s", LabelStyle.Render("Path:"), ValueStyle.Render(row.DiskPath)),
		fmt.Sprintf("%s %.2f", LabelStyle.Render("MB read:"), row.DiskReadKiB),
		fmt.Sprintf("%s %.2f", LabelStyle.Render("MB written:"), row.DiskWriteKiB),
	}

	return OverviewStyle.Width(a.width - 4).Render(
		lipgloss.JoinVertical(lipgloss.Left, content...),
	)
}

func (a *App) renderTable(visibleRows int) string {
	rows := a.selection.Rows()
	if len(rows) == 0 {
		return RowStyle.Render("no vms")
	}

	idW, nameW, cpuW, memW, statusW := columnWidths(rows)

	startIdx := 0
	if a.selection.Index() >= visibleRows {
		startIdx = a.selection.Index() - visibleRows + 1
	}
	endIdx := min(startIdx+visibleRows, len(rows))

	var content strings.Builder
	header := fmt.Sprintf("%-*s %-*s %*s %*s %-*s",
		idW, "id", nameW, "name", cpuW, "cpu usage", memW, "memory usage", statusW, "status")
	content.WriteString(TableHeaderStyle.Render(header))
	content.WriteString("\n")

	for i := startIdx; i < endIdx; i++ {
		row := rows[i]
		line := fmt.Sprintf("%-*d %-*s %*s %*s %-*s",
			idW, row.Identity.ID,
			nameW, truncateString(row.Identity.Name, nameW),
			cpuW, fmt.Sprintf("%.2f%%", row.CPUPercent),
			memW, row.MemDisplay,
			statusW, row.Status)

		style := RowStyle
		if i == a.selection.Index() {
			style = SelectedRowStyle
		} else if (i-startIdx)%2 == 1 {
			style = AltRowStyle
		}
		content.WriteString(style.Render(line))
		content.WriteString("\n")
	}

	table := strings.TrimRight(content.String(), "\n")
	bar := a.renderScrollbar(endIdx - startIdx + 1)
	return lipgloss.JoinHorizontal(lipgloss.Top, table, " ", bar)
}

// renderScrollbar maps the selection's offset into a vertical thumb over the
// scrollbar's total range.
func (a *App) renderScrollbar(height int) string {
	if height < 1 {
		height = 1
	}

	thumb := 0
	if r := a.selection.ScrollRange(); r > 0 {
		thumb = a.selection.Offset() * (height - 1) / r
	}

	var b strings.Builder
	for i := 0; i < height; i++ {
		if i == thumb {
			b.WriteString("█")
		} else {
			b.WriteString("│")
		}
		if i < height-1 {
			b.WriteString("\n")
		}
	}
	return ScrollbarStyle.Render(b.String())
}

func (a *App) renderStatus() string {
	if a.status == "" {
		return ""
	}
	if a.statusErr {
		return StatusErrStyle.Render(a.status)
	}
	return StatusLineStyle.Render(a.status)
}

// columnWidths sizes each column to its widest cell, header included.
func columnWidths(rows []models.Row) (idW, nameW, cpuW, memW, statusW int) {
	idW, nameW, cpuW, memW, statusW = 2, 4, 9, 12, 6
	for _, row := range rows {
		idW = max(idW, len(fmt.Sprintf("%d", row.Identity.ID)))
		nameW = max(nameW, len(row.Identity.Name))
		cpuW = max(cpuW, len(fmt.Sprintf("%.2f%%", row.CPUPercent)))
		memW = max(memW, len(row.MemDisplay))
		statusW = max(statusW, len(row.Status))
	}
	return idW, nameW, cpuW, memW, statusW
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
