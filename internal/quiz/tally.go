package quiz

import "github.com/verte-zerg/tuicodon/internal/model"

// Tally counts missed symbols. A symbol starts at zero and is listed in the
// order it was first charged.
type Tally struct {
	counts map[string]int
	order  []string
}

// Add charges one miss to symbol.
func (t *Tally) Add(symbol string) {
	if t.counts == nil {
		t.counts = make(map[string]int)
	}
	if _, ok := t.counts[symbol]; !ok {
		t.order = append(t.order, symbol)
	}
	t.counts[symbol]++
}

// Count returns the misses charged to symbol.
func (t Tally) Count(symbol string) int {
	return t.counts[symbol]
}

// Len returns the number of distinct symbols charged.
func (t Tally) Len() int {
	return len(t.order)
}

// Entries returns the tally in first-touch order.
func (t Tally) Entries() []model.SymbolCount {
	out := make([]model.SymbolCount, 0, len(t.order))
	for _, sym := range t.order {
		out = append(out, model.SymbolCount{Symbol: sym, Count: t.counts[sym]})
	}
	return out
}

func (t Tally) clone() Tally {
	out := Tally{
		counts: make(map[string]int, len(t.counts)),
		order:  append([]string(nil), t.order...),
	}
	for k, v := range t.counts {
		out.counts[k] = v
	}
	return out
}
