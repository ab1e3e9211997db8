package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tkorkmaz/prosed/internal/models"
	"github.com/tkorkmaz/prosed/internal/persistence"
)

// SnapshotMsg delivers a re-read update file to the monitor screen.
type SnapshotMsg struct {
	Snapshot *persistence.Snapshot
}

// MonitorModel renders a read-only dashboard over a continuous update
// file maintained by another process.
type MonitorModel struct {
	width  int
	height int
	path   string
	snap   *persistence.Snapshot
}

// NewMonitorModel creates the dashboard for an update file path.
func NewMonitorModel(path string) MonitorModel {
	return MonitorModel{path: path}
}

// Init does nothing; snapshots arrive from the watcher via Send.
func (m MonitorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m MonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		m.snap = msg.Snapshot
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the dashboard
func (m MonitorModel) View() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	if m.snap == nil {
		return titleStyle.Render("prosed monitor") + "\n" +
			dimStyle.Render(fmt.Sprintf("Bekleniyor: %s", m.path)) + "\n\n" +
			dimStyle.Render("q çıkış")
	}

	s := m.snap
	header := titleStyle.Render(fmt.Sprintf("Oturum %s  (%s)", s.SessionID, s.StationNumber))
	summary := dimStyle.Render(fmt.Sprintf(
		"Tamamlanma %.0f%%   Başarılı %d   Başarısız %d   Süre %ds   Güncellendi %s",
		s.CompletionPercentage, s.PassedCount, s.FailedCount, s.DurationSeconds,
		s.LastUpdated.Format("15:04:05")))

	rows := make([]string, 0, len(s.Steps))
	for _, step := range s.Steps {
		style := dimStyle
		mark := "·"
		switch step.Status {
		case models.StatusPassed:
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
			mark = "✓"
		case models.StatusFailed:
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
			mark = "✗"
		case models.StatusInProgress:
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
			mark = "▶"
		}
		value := ""
		if step.ResultValue != nil {
			value = *step.ResultValue
		}
		rows = append(rows, style.Render(fmt.Sprintf(" %s %2d. %-40s %-12s %s",
			mark, step.StepID, truncate(step.Name, 40), step.Status, value)))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	help := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Render("q çıkış")
	return lipgloss.JoinVertical(lipgloss.Left, header, summary, "", body, "", help)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
