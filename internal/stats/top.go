// Package stats contains statistics calculations and reporting.
package stats

import (
	"sort"

	"github.com/verte-zerg/tuicodon/internal/model"
)

// SortByCount returns a copy of entries ordered by count, most missed first.
func SortByCount(entries []model.SymbolCount) []model.SymbolCount {
	out := append([]model.SymbolCount(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Symbol < out[j].Symbol
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// TopSymbols returns the n most missed symbols.
func TopSymbols(entries []model.SymbolCount, n int) []string {
	if n <= 0 || len(entries) == 0 {
		return nil
	}
	sorted := SortByCount(entries)
	if n > len(sorted) {
		n = len(sorted)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, sorted[i].Symbol)
	}
	return out
}
