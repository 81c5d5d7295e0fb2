package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	logHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	logFooterStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
)

func (m model) renderLogView() string {
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(m.logView.Width).
		Height(m.logView.Height)

	if m.logFocused {
		logStyle = logStyle.BorderForeground(lipgloss.Color("62"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.logHeaderView(),
		logStyle.Render(m.logView.View()),
		m.logFooterView(),
	)
}

func (m model) logHeaderView() string {
	title := "Activity"
	if m.table.cursor < len(m.items) {
		title = m.items[m.table.cursor].Name
		if !m.items[m.table.cursor].Enabled {
			title += " (disabled)"
		}
	}
	return logHeaderStyle.Render(title)
}

func (m model) logFooterView() string {
	info := fmt.Sprintf(" %3.f%% ", m.logView.ScrollPercent()*100)
	if m.logFocused {
		info += " ↑/↓: scroll • ESC: back "
	}
	return logFooterStyle.Render(info)
}

func (m *model) updateLogView() {
	var lines []string
	for i, line := range m.logLines {
		lines = append(lines, fmt.Sprintf("%4d │ %s", i+1, line))
	}
	atBottom := m.logView.AtBottom()
	m.logView.SetContent(strings.Join(lines, "\n"))
	if atBottom || !m.logFocused {
		m.logView.GotoBottom()
	}
}
