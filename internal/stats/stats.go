// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/verte-zerg/tuicodon/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Accuracy returns correct/rounds as a percentage floored to one decimal.
func Accuracy(correct, rounds int) float64 {
	if rounds <= 0 {
		return 0
	}
	return math.Floor(float64(correct)/float64(rounds)*1000) / 10
}

// AverageSeconds returns the mean of timeData (milliseconds) floored to
// whole milliseconds and expressed in seconds.
func AverageSeconds(timeData []int64) float64 {
	if len(timeData) == 0 {
		return 0
	}
	return math.Floor(stat.Mean(toFloats(timeData), nil)) / 1000
}

// MedianSeconds returns the median round time in seconds.
func MedianSeconds(timeData []int64) float64 {
	if len(timeData) == 0 {
		return 0
	}
	values := toFloats(timeData)
	sort.Float64s(values)
	return stat.Quantile(0.5, stat.Empirical, values, nil) / 1000
}

// FormatNumber prints v without trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderWrongReport prints the per-symbol wrong-answer tally in the given order.
func RenderWrongReport(w io.Writer, entries []model.SymbolCount) error {
	if _, err := fmt.Fprintln(w, "Drill finished. Review the residues you missed."); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s: missed %d times.\n", e.Symbol, e.Count); err != nil {
			return err
		}
	}
	return nil
}

// RenderSummary prints session totals and a round-time trend.
func RenderSummary(w io.Writer, report Report, width int) error {
	s := report.Summary
	if s.Rounds == 0 {
		_, err := fmt.Fprintln(w, "No rounds answered.")
		return err
	}
	times := report.TimeData()
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Rounds: %d\n", s.Rounds); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Correct: %d\n", s.Correct); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Accuracy: %s%%\n", FormatNumber(Accuracy(s.Correct, s.Rounds))); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg time: %ss  Median: %.1fs\n", FormatNumber(AverageSeconds(times)), MedianSeconds(times)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Time trend: %s\n", TimeTrend(times, width)); err != nil {
		return err
	}
	return nil
}

// TimeTrend renders round times as a sparkline at most width characters wide.
func TimeTrend(timeData []int64, width int) string {
	values := toFloats(timeData)
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	return Sparkline(values)
}

// RollingAccuracy returns the windowed percentage of correct rounds.
func RollingAccuracy(rounds []model.RoundRecord, window int) []float64 {
	values := make([]float64, len(rounds))
	for i, r := range rounds {
		if r.Correct {
			values[i] = 100
		}
	}
	return MovingAverage(values, window)
}

// RenderSymbolTable prints wrong-answer counts as an aligned table, most missed first.
func RenderSymbolTable(w io.Writer, entries []model.SymbolCount) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No missed residues.")
		return err
	}
	sorted := SortByCount(entries)
	total := 0
	for _, e := range sorted {
		total += e.Count
	}
	rows := make([][]string, 0, len(sorted))
	for _, e := range sorted {
		rows = append(rows, []string{
			e.Symbol,
			fmt.Sprintf("%d", e.Count),
			fmt.Sprintf("%.1f%%", float64(e.Count)/float64(total)*100),
		})
	}
	return RenderTable(w, []string{"Residue", "Missed", "Share"}, rows, map[int]bool{1: true, 2: true})
}

func toFloats(values []int64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
