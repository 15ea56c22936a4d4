package reviewui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuicodon/internal/model"
	"github.com/verte-zerg/tuicodon/internal/stats"
)

func sampleReport() stats.Report {
	return stats.Report{
		Summary: model.SessionSummary{
			SessionID: "0123456789abcdef",
			Variant:   "rna-template",
			Rounds:    3,
			Correct:   2,
			TotalMs:   6000,
		},
		Rounds: []model.RoundRecord{
			{Stage: 1, Display: "5'-GAUGCCUAAC-3'", Expected: "MP", Submitted: "MP", Correct: true, ElapsedMs: 1000},
			{Stage: 2, Display: "5'-CAUGAAAUAGG-3'", Expected: "MK", Submitted: "MR", ElapsedMs: 2000},
			{Stage: 3, Display: "5'-AAUGUUUUGAA-3'", Expected: "MF", Submitted: "MF", Correct: true, ElapsedMs: 3000},
		},
		SymbolErrors: []model.SymbolCount{
			{Symbol: "R", Count: 1},
			{Symbol: "K", Count: 1},
		},
	}
}

func TestRenderOverview(t *testing.T) {
	out := renderOverview(sampleReport(), 2, 100)
	for _, needle := range []string{"Rounds", "66.6%", "2s", "Time trend", "Rolling accuracy", "Most missed: K, R"} {
		if !strings.Contains(out, needle) {
			t.Fatalf("overview missing %q:\n%s", needle, out)
		}
	}
}

func TestRenderOverviewEmpty(t *testing.T) {
	if out := renderOverview(stats.Report{}, 2, 80); out != "No rounds answered." {
		t.Fatalf("unexpected empty overview: %q", out)
	}
}

func TestRowsFollowReport(t *testing.T) {
	report := sampleReport()
	rounds := roundRows(report.Rounds)
	if len(rounds) != 3 || rounds[1][4] != "wrong" || rounds[0][5] != "1s" {
		t.Fatalf("unexpected round rows: %v", rounds)
	}
	residues := residueRows(report.SymbolErrors)
	if len(residues) != 2 || residues[0][0] != "K" || residues[0][2] != "50.0%" {
		t.Fatalf("unexpected residue rows: %v", residues)
	}
}

func TestViewFitsWindow(t *testing.T) {
	m := NewModel(sampleReport())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	if lines := strings.Split(view, "\n"); len(lines) != 30 {
		t.Fatalf("expected 30 lines, got %d", len(lines))
	}
	if !strings.Contains(view, "Session: 01234567") {
		t.Fatalf("expected session header: %s", view)
	}
}

func TestTabNavigationAndQuit(t *testing.T) {
	m := NewModel(sampleReport())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabResidues {
		t.Fatalf("expected residues tab, got %d", m.activeTab)
	}
	if !strings.Contains(m.View(), "Residue") {
		t.Fatalf("expected residue table in view")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.activeTab != tabRounds {
		t.Fatalf("expected wrap to rounds tab, got %d", m.activeTab)
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestWindowSteps(t *testing.T) {
	if nextWindow(1) != 5 || nextWindow(5) != 10 || nextWindow(7) != 10 {
		t.Fatalf("unexpected next window steps")
	}
	if prevWindow(5) != 1 || prevWindow(10) != 5 || prevWindow(7) != 5 {
		t.Fatalf("unexpected previous window steps")
	}
}
