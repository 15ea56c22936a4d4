package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuicodon/internal/quiz"
	"github.com/verte-zerg/tuicodon/internal/stats"
)

const barWidth = 60

var (
	adenineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	uracilStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	guanineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cytosineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#40A9FF"))
	markerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#36CFC9"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	failureStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// renderBanner returns the status lines shown above every prompt.
func renderBanner(st quiz.State) []string {
	bar := strings.Repeat("-", barWidth)
	status := fmt.Sprintf("Score: %s  Accuracy: %s  Avg time: %s",
		valueStyle.Render(fmt.Sprintf("%d", st.Score)),
		valueStyle.Render(stats.FormatNumber(st.Accuracy())+"%"),
		valueStyle.Render(stats.FormatNumber(st.AverageSeconds())+"s"),
	)
	return []string{
		bar,
		status,
		bar,
		fmt.Sprintf("Stage %d", st.Stage),
	}
}

func renderFeedback(out quiz.Outcome) string {
	secs := stats.FormatNumber(float64(out.Elapsed.Milliseconds()) / 1000)
	if out.Correct {
		return successStyle.Render(fmt.Sprintf("Correct! (%ss)", secs))
	}
	submitted := out.Submitted
	if submitted == "" {
		submitted = "(empty)"
	}
	return failureStyle.Render(fmt.Sprintf("Wrong. Answer: %s, submitted: %s (%ss)", out.Expected, submitted, secs))
}
