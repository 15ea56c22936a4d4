// Package reviewui provides the Bubble Tea screen shown after a drill.
package reviewui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuicodon/internal/model"
	"github.com/verte-zerg/tuicodon/internal/stats"
)

const (
	tabOverview = iota
	tabResidues
	tabRounds
)

const defaultWindow = 5

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea review UI.
type Model struct {
	report stats.Report
	window int

	tabs      []string
	activeTab int
	overview  viewport.Model
	tables    map[int]*table.Model

	width  int
	height int
}

// NewModel constructs a review model for a finished session.
func NewModel(report stats.Report) *Model {
	m := &Model{
		report:   report,
		window:   defaultWindow,
		tabs:     []string{"Overview", "Residues", "Rounds"},
		overview: viewport.New(0, 0),
	}
	residues := buildTable(residueColumns(), residueRows(report.SymbolErrors))
	rounds := buildTable(roundColumns(), roundRows(report.Rounds))
	m.tables = map[int]*table.Model{
		tabResidues: &residues,
		tabRounds:   &rounds,
	}
	m.renderOverview()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderOverview()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.window = nextWindow(m.window)
			m.renderOverview()
			return m, nil
		case "-":
			m.window = prevWindow(m.window)
			m.renderOverview()
			return m, nil
		case "g", "home":
			if t, ok := m.tables[m.activeTab]; ok {
				t.GotoTop()
			} else {
				m.overview.GotoTop()
			}
			return m, nil
		case "G", "end":
			if t, ok := m.tables[m.activeTab]; ok {
				t.GotoBottom()
			} else {
				m.overview.GotoBottom()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			if t, ok := m.tables[m.activeTab]; ok {
				*t, cmd = t.Update(msg)
				return m, cmd
			}
			m.overview, cmd = m.overview.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderHelp(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	for _, t := range m.tables {
		t.SetWidth(m.width)
		t.SetHeight(maxInt(1, bodyHeight-1))
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	for idx, t := range m.tables {
		if idx == m.activeTab {
			t.Focus()
		} else {
			t.Blur()
		}
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	s := m.report.Summary
	summary := fmt.Sprintf("Session: %s  variant=%s  window=%d", shortID(s.SessionID), s.Variant, m.window)
	return tabs + "\n" + headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderHelp() string {
	return headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Quit: q")
}

func (m *Model) renderBody() string {
	if t, ok := m.tables[m.activeTab]; ok {
		if len(t.Rows()) == 0 {
			if m.activeTab == tabResidues {
				return "No missed residues."
			}
			return "No rounds answered."
		}
		return tableMutedStyle.Render(t.View())
	}
	return m.overview.View()
}

func (m *Model) renderOverview() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.report, m.window, width))
}

func renderOverview(report stats.Report, window, width int) string {
	s := report.Summary
	if s.Rounds == 0 {
		return "No rounds answered."
	}
	times := report.TimeData()
	cards := []string{
		metricCard("Rounds", fmt.Sprintf("%d", s.Rounds)),
		metricCard("Correct", fmt.Sprintf("%d", s.Correct)),
		metricCard("Accuracy", stats.FormatNumber(stats.Accuracy(s.Correct, s.Rounds))+"%"),
		metricCard("Avg time", stats.FormatNumber(stats.AverageSeconds(times))+"s"),
		metricCard("Median", fmt.Sprintf("%.1fs", stats.MedianSeconds(times))),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	trendWidth := maxInt(1, width-20)
	lines := []string{
		summary,
		"",
		headerStyle.Render("Time trend       ") + stats.TimeTrend(times, trendWidth),
		headerStyle.Render("Rolling accuracy ") + stats.Sparkline(tail(stats.RollingAccuracy(report.Rounds, window), trendWidth)),
	}
	if top := stats.TopSymbols(report.SymbolErrors, 5); len(top) > 0 {
		lines = append(lines, "", headerStyle.Render("Most missed: ")+strings.Join(top, ", "))
	}
	return strings.Join(lines, "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func residueColumns() []table.Column {
	return []table.Column{
		{Title: "Residue", Width: 7},
		{Title: "Missed", Width: 7},
		{Title: "Share", Width: 7},
	}
}

func residueRows(entries []model.SymbolCount) []table.Row {
	sorted := stats.SortByCount(entries)
	total := 0
	for _, e := range sorted {
		total += e.Count
	}
	rows := make([]table.Row, 0, len(sorted))
	for _, e := range sorted {
		rows = append(rows, table.Row{
			e.Symbol,
			fmt.Sprintf("%d", e.Count),
			fmt.Sprintf("%.1f%%", float64(e.Count)/float64(total)*100),
		})
	}
	return rows
}

func roundColumns() []table.Column {
	return []table.Column{
		{Title: "Stage", Width: 5},
		{Title: "Sequence", Width: 40},
		{Title: "Expected", Width: 10},
		{Title: "Submitted", Width: 10},
		{Title: "Result", Width: 6},
		{Title: "Time", Width: 7},
	}
}

func roundRows(rounds []model.RoundRecord) []table.Row {
	rows := make([]table.Row, 0, len(rounds))
	for _, r := range rounds {
		result := "wrong"
		if r.Correct {
			result = "ok"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", r.Stage),
			r.Display,
			r.Expected,
			r.Submitted,
			result,
			stats.FormatNumber(float64(r.ElapsedMs)/1000) + "s",
		})
	}
	return rows
}

func buildTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, len(rows))),
	)
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func tail(values []float64, n int) []float64 {
	if n > 0 && len(values) > n {
		return values[len(values)-n:]
	}
	return values
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func nextWindow(n int) int {
	if n < 5 {
		return 5
	}
	if n%5 == 0 {
		return n + 5
	}
	return ((n / 5) + 1) * 5
}

func prevWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
