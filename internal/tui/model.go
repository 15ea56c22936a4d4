// Package tui provides the Bubble Tea translation drill and its plain
// line-mode counterpart.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuicodon/internal/generator"
	"github.com/verte-zerg/tuicodon/internal/quiz"
)

const promptText = "Translate: "

// inputCharLimit is one residue longer than the longest answer, so an
// overlong guess still reaches the length check.
const inputCharLimit = generator.MaxAskLength

// Model implements the Bubble Tea drill UI.
type Model struct {
	ctx     context.Context
	session *quiz.Session
	input   textinput.Model

	width  int
	height int

	last   *quiz.Outcome
	exited bool
	err    error
}

// NewModel constructs a drill model around a prepared session.
func NewModel(ctx context.Context, session *quiz.Session) *Model {
	in := textinput.New()
	in.Prompt = promptText
	in.Placeholder = "amino acid chain"
	in.CharLimit = inputCharLimit
	in.Focus()
	return &Model{
		ctx:     ctx,
		session: session,
		input:   in,
	}
}

// Exited reports whether the drill ended through the exit command or Ctrl+C.
func (m *Model) Exited() bool {
	return m.exited
}

// Err returns the error that stopped the drill, if any.
func (m *Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.exited = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	if quiz.IsExit(line) {
		m.exited = true
		return m, tea.Quit
	}
	out, err := m.session.Submit(m.ctx, line)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.last = &out
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	st := m.session.State()
	contentWidth := barWidth
	if m.width > 0 && m.width < contentWidth {
		contentWidth = m.width
	}

	lines := make([]string, 0, 10)
	if m.last != nil {
		lines = append(lines, renderFeedback(*m.last), "")
	}
	lines = append(lines, renderBanner(st)...)
	lines = append(lines, "", wrapStyledRunes(buildStyledBases(st.Display), contentWidth), "", m.input.View())
	content := lipgloss.NewStyle().Width(contentWidth).Render(strings.Join(lines, "\n"))

	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderFooter() string {
	st := m.session.State()
	segments := []string{
		m.session.Variant().String(),
		fmt.Sprintf("%d codons", st.AskLength),
		fmt.Sprintf("%d missed residues", st.Wrong.Len()),
		"type exit to finish",
	}
	return footerStyle.Render(strings.Join(segments, " · "))
}
