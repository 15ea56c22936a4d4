package stats

import (
	"bytes"
	"testing"

	"github.com/verte-zerg/tuicodon/internal/model"
)

func TestAccuracyFloorsToOneDecimal(t *testing.T) {
	cases := []struct {
		correct, rounds int
		want            float64
	}{
		{0, 0, 0},
		{1, 3, 33.3},
		{2, 3, 66.6},
		{3, 3, 100},
		{7, 9, 77.7},
	}
	for _, tc := range cases {
		if got := Accuracy(tc.correct, tc.rounds); got != tc.want {
			t.Fatalf("Accuracy(%d, %d) = %v, want %v", tc.correct, tc.rounds, got, tc.want)
		}
	}
}

func TestAverageSeconds(t *testing.T) {
	if got := AverageSeconds(nil); got != 0 {
		t.Fatalf("expected 0 for empty data, got %v", got)
	}
	if got := AverageSeconds([]int64{1000, 2001, 3000}); got != 2 {
		t.Fatalf("expected 2, got %v", got)
	}
	if got := AverageSeconds([]int64{1234, 4321}); got != 2.777 {
		t.Fatalf("expected 2.777, got %v", got)
	}
}

func TestMedianSeconds(t *testing.T) {
	if got := MedianSeconds([]int64{5000, 1000, 3000}); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(66.6); got != "66.6" {
		t.Fatalf("unexpected format: %s", got)
	}
	if got := FormatNumber(100); got != "100" {
		t.Fatalf("unexpected format: %s", got)
	}
}

func TestSparklineAndTrend(t *testing.T) {
	if got := Sparkline([]float64{1, 1, 1}); got != "+++" {
		t.Fatalf("expected flat sparkline, got %q", got)
	}
	if got := Sparkline([]float64{0, 10}); got != " @" {
		t.Fatalf("expected min/max sparkline, got %q", got)
	}
	if got := TimeTrend([]int64{1, 2, 3, 4, 5}, 2); len(got) != 2 {
		t.Fatalf("expected trend trimmed to width, got %q", got)
	}
}

func TestRollingAccuracy(t *testing.T) {
	rounds := []model.RoundRecord{{Correct: true}, {Correct: false}, {Correct: true}, {Correct: true}}
	got := RollingAccuracy(rounds, 2)
	want := []float64{100, 50, 50, 100}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestRenderWrongReportKeepsOrder(t *testing.T) {
	var buf bytes.Buffer
	entries := []model.SymbolCount{{Symbol: "R", Count: 2}, {Symbol: "A", Count: 5}}
	if err := RenderWrongReport(&buf, entries); err != nil {
		t.Fatalf("render report: %v", err)
	}
	want := "Drill finished. Review the residues you missed.\nR: missed 2 times.\nA: missed 5 times.\n"
	if buf.String() != want {
		t.Fatalf("unexpected report:\n%s", buf.String())
	}
}

func TestSelectWeakSymbols(t *testing.T) {
	entries := []model.SymbolCount{
		{Symbol: "*", Count: 9},
		{Symbol: "L", Count: 4},
		{Symbol: "K", Count: 6},
		{Symbol: "A", Count: 1},
	}
	weak := SelectWeakSymbols(entries, 2)
	if len(weak) != 2 {
		t.Fatalf("expected 2 weak symbols, got %v", weak)
	}
	for _, sym := range []string{"K", "L"} {
		if _, ok := weak[sym]; !ok {
			t.Fatalf("expected %s in weak set %v", sym, weak)
		}
	}
	if got := SelectWeakSymbols(nil, 3); len(got) != 0 {
		t.Fatalf("expected empty weak set, got %v", got)
	}
}
