package tui

import tea "github.com/charmbracelet/bubbletea"

func (m *model) handleKeys(msg tea.KeyMsg) tea.Cmd {
	if m.logFocused {
		switch msg.String() {
		case "q", "esc":
			m.logFocused = false
		case "up", "k":
			m.logView.LineUp(1)
		case "down", "j":
			m.logView.LineDown(1)
		case "pgup":
			m.logView.HalfViewUp()
		case "pgdown":
			m.logView.HalfViewDown()
		case "g":
			m.logView.GotoTop()
		case "G":
			m.logView.GotoBottom()
		}
		return nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		if m.cancel != nil {
			m.cancel()
		}
		m.quitting = true
		return tea.Quit
	case "up", "k":
		if m.table.cursor > 0 {
			m.table.cursor--
		}
	case "down", "j":
		if m.table.cursor < len(m.table.rows)-1 {
			m.table.cursor++
		}
	case " ":
		if m.table.cursor < len(m.items) {
			m.items[m.table.cursor].Selected = !m.items[m.table.cursor].Selected
			m.rebuildRows()
		}
	case "enter":
		return m.toggleCursor()
	case "e":
		return m.toggleCmd(m.selectedNames(), true)
	case "d":
		return m.toggleCmd(m.selectedNames(), false)
	case "m":
		return m.startMerge()
	case "p":
		return m.startPatch()
	case "x":
		if m.cancel != nil {
			m.appendLog("cancelling…")
			m.cancel()
		}
	case "r":
		return m.refreshCmd()
	case "tab":
		m.logFocused = true
	}
	return nil
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	var cmd tea.Cmd
	if m.logFocused {
		m.logView, cmd = m.logView.Update(msg)
	}
	return cmd
}
