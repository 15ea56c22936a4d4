package stats

import (
	"github.com/verte-zerg/tuicodon/internal/model"
)

// SelectWeakSymbols selects the most missed residues, excluding the stop marker.
func SelectWeakSymbols(entries []model.SymbolCount, top int) map[string]struct{} {
	weakSet := map[string]struct{}{}
	candidates := make([]model.SymbolCount, 0, len(entries))
	for _, e := range entries {
		if e.Count <= 0 || e.Symbol == "*" {
			continue
		}
		candidates = append(candidates, e)
	}
	if len(candidates) == 0 {
		return weakSet
	}
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	for _, sym := range TopSymbols(candidates, top) {
		weakSet[sym] = struct{}{}
	}
	return weakSet
}
