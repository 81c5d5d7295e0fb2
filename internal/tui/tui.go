package tui

import (
	"context"
	"fmt"
	"strings"

	"modui/internal/config"
	"modui/internal/manager"
	"modui/internal/types"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type model struct {
	mgr    *manager.Manager
	banner string

	mergeScript string
	patchScript string

	items    []types.ModItem
	table    tableModel
	logView  viewport.Model
	logLines []string

	running bool
	cancel  context.CancelFunc

	quitting   bool
	width      int
	height     int
	logFocused bool
}

type tableModel struct {
	columns   []string
	rows      []types.Row
	cursor    int
	styles    tableStyles
	maxWidth  int
	maxHeight int
}

type tableStyles struct {
	Header       lipgloss.Style
	Cell         lipgloss.Style
	Selected     lipgloss.Style
	Border       lipgloss.Style
	HeaderBorder lipgloss.Style
}

type listMsg manager.ModList

type scriptMsg manager.ScriptReport

// Create runs the interactive interface until the user quits. mergeScript and
// patchScript may be empty; the first script found in the conventional
// directory is used then.
func Create(mgr *manager.Manager, mergeScript, patchScript string) error {
	m := initialModel(mgr, mergeScript, patchScript)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func initialModel(mgr *manager.Manager, mergeScript, patchScript string) model {
	styles := tableStyles{
		Header:       lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:         lipgloss.NewStyle().Padding(0, 1),
		Selected:     lipgloss.NewStyle().Background(lipgloss.Color("#3C3C3C")).Padding(0, 1),
		Border:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 0),
		HeaderBorder: lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false),
	}

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	vp.MouseWheelEnabled = true

	banner, ok := config.LoadLogo(mgr.Layout())
	if !ok {
		banner = "GIMI ModUI"
	}

	return model{
		mgr:         mgr,
		banner:      banner,
		mergeScript: mergeScript,
		patchScript: patchScript,
		table: tableModel{
			columns:   []string{"Mod", "State", "Preview"},
			styles:    styles,
			maxWidth:  60,
			maxHeight: 20,
		},
		logView: vp,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.refreshCmd(),
	)
}

func (m model) refreshCmd() tea.Cmd {
	mgr := m.mgr
	return func() tea.Msg { return listMsg(mgr.ListMods()) }
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		tableWidth := m.width/2 - 4
		logWidth := m.width/2 - 6
		logHeight := m.height - 6

		m.table.maxWidth = tableWidth
		m.table.maxHeight = logHeight
		m.logView.Width = logWidth
		m.logView.Height = logHeight
		m.updateLogView()

	case tea.KeyMsg:
		if c := m.handleKeys(msg); c != nil {
			return m, c
		}

	case tea.MouseMsg:
		if c := m.handleMouse(msg); c != nil {
			cmds = append(cmds, c)
		}

	case listMsg:
		m.applyList(manager.ModList(msg))

	case scriptMsg:
		m.running = false
		m.cancel = nil
		report := manager.ScriptReport(msg)
		m.appendResult(report.Result)
		m.applyList(report.Fresh)
	}

	if m.logFocused {
		m.logView, cmd = m.logView.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// applyList rebuilds the table from a fresh scan, keeping selection marks for
// mods that still exist.
func (m *model) applyList(list manager.ModList) {
	selected := make(map[string]bool, len(m.items))
	for _, item := range m.items {
		if item.Selected {
			selected[item.Name] = true
		}
	}

	m.items = m.items[:0]
	for _, mod := range list.Mods {
		m.items = append(m.items, types.ModItem{
			Name:       mod.Name,
			Enabled:    mod.Enabled,
			HasPreview: mod.HasPreview,
			Selected:   selected[mod.Name],
		})
	}
	if m.table.cursor >= len(m.items) {
		m.table.cursor = len(m.items) - 1
	}
	if m.table.cursor < 0 {
		m.table.cursor = 0
	}
	m.rebuildRows()

	if !list.Result.Success {
		m.appendLog("! " + list.Result.Message)
	}
	for _, w := range list.Warnings {
		m.appendLog("! " + w)
	}
}

func (m *model) rebuildRows() {
	m.table.rows = m.table.rows[:0]
	for _, item := range m.items {
		state := "enabled"
		if !item.Enabled {
			state = "disabled"
		}
		preview := ""
		if item.HasPreview {
			preview = "yes"
		}
		name := item.Name
		if item.Selected {
			name = "* " + name
		}
		m.table.rows = append(m.table.rows, types.Row{
			Key:  item.Name,
			Data: []string{name, state, preview},
		})
	}
}

func (m *model) appendResult(res manager.Result) {
	m.appendLog(res.Message)
	if res.Details != "" {
		m.appendLog(res.Details)
	}
}

func (m *model) appendLog(line string) {
	for _, l := range strings.Split(line, "\n") {
		m.logLines = append(m.logLines, l)
	}
	m.updateLogView()
}

// selectedNames returns the marked mods, or the mod under the cursor when
// nothing is marked.
func (m *model) selectedNames() []string {
	var names []string
	for _, item := range m.items {
		if item.Selected {
			names = append(names, item.Name)
		}
	}
	if len(names) == 0 && m.table.cursor < len(m.items) {
		names = append(names, m.items[m.table.cursor].Name)
	}
	return names
}

func (m *model) startMerge() tea.Cmd {
	if m.running {
		m.appendLog("a script is already running")
		return nil
	}
	scriptPath := m.mergeScript
	if scriptPath == "" {
		found, err := config.FindScript(m.mgr.Layout().MergeDir())
		if err != nil {
			m.appendLog("! " + err.Error())
			return nil
		}
		scriptPath = found
	}

	var selected []string
	for _, item := range m.items {
		if item.Selected {
			selected = append(selected, item.Name)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.running = true
	m.appendLog("running merge: " + scriptPath)

	mgr := m.mgr
	return func() tea.Msg {
		return scriptMsg(mgr.RunMerge(ctx, scriptPath, selected))
	}
}

func (m *model) startPatch() tea.Cmd {
	if m.running {
		m.appendLog("a script is already running")
		return nil
	}
	scriptPath := m.patchScript
	if scriptPath == "" {
		found, err := config.FindScript(m.mgr.Layout().ScriptsDir())
		if err != nil {
			m.appendLog("! " + err.Error())
			return nil
		}
		scriptPath = found
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.running = true
	m.appendLog("running patch: " + scriptPath)

	mgr := m.mgr
	return func() tea.Msg {
		return scriptMsg(mgr.RunPatch(ctx, scriptPath))
	}
}

func (m *model) toggleCursor() tea.Cmd {
	names := m.selectedNames()
	if len(names) == 0 {
		return nil
	}
	// Flip relative to the mod under the cursor.
	enabled := true
	if m.table.cursor < len(m.items) {
		enabled = !m.items[m.table.cursor].Enabled
	}
	return m.toggleCmd(names, enabled)
}

func (m *model) toggleCmd(names []string, enabled bool) tea.Cmd {
	if m.running {
		m.appendLog("a script is already running")
		return nil
	}
	mgr := m.mgr
	return func() tea.Msg {
		list := mgr.ToggleMods(names, enabled)
		return listMsg(list)
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	table := m.table.View()
	logView := m.renderLogView()

	header := lipgloss.NewStyle().Bold(true).Render(m.banner)
	status := m.statusLine()

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		table,
		"  ",
		logView,
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, header, body, status),
	)
}

func (m model) statusLine() string {
	if m.running {
		return "running… • x: cancel"
	}
	return "space: mark • enter: toggle • m: merge • p: patch • r: refresh • q: quit"
}

func (m tableModel) View() string {
	header := m.renderHeader()
	rows := m.renderRows()

	tableContent := lipgloss.JoinVertical(lipgloss.Left,
		header,
		strings.Join(rows, "\n"),
	)

	return m.styles.Border.
		Width(m.maxWidth).
		Height(m.maxHeight).
		Render(tableContent)
}

func (m tableModel) renderHeader() string {
	var cols []string
	for _, col := range m.columns {
		cols = append(cols, m.styles.Header.Render(col))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Left, cols...)
	return m.styles.HeaderBorder.Render(header) + "\n"
}

func (m tableModel) renderRows() []string {
	var rows []string
	for i, row := range m.rows {
		var cells []string
		style := m.styles.Cell
		if i == m.cursor {
			style = m.styles.Selected.
				BorderLeft(true).
				BorderStyle(lipgloss.ThickBorder()).
				BorderLeftForeground(lipgloss.Color("#FFFFFF"))
		}

		for _, d := range row.Data {
			cells = append(cells, style.Render(d))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Left, cells...))
	}
	return rows
}
