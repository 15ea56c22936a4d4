// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"

	"github.com/verte-zerg/tuicodon/internal/model"
	"github.com/verte-zerg/tuicodon/internal/store"
)

// Report contains precomputed data for session rendering.
type Report struct {
	Summary      model.SessionSummary
	Rounds       []model.RoundRecord
	SymbolErrors []model.SymbolCount
}

// BuildReport loads a session's journal.
func BuildReport(ctx context.Context, st *store.Store, sessionID string) (Report, error) {
	summary, err := st.Summary(ctx, sessionID)
	if err != nil {
		return Report{}, err
	}
	rounds, err := st.ListRounds(ctx, sessionID)
	if err != nil {
		return Report{}, err
	}
	symbols, err := st.ListSymbolErrors(ctx, sessionID)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Summary:      summary,
		Rounds:       rounds,
		SymbolErrors: symbols,
	}, nil
}

// TimeData extracts per-round elapsed milliseconds.
func (r Report) TimeData() []int64 {
	out := make([]int64, len(r.Rounds))
	for i, rec := range r.Rounds {
		out[i] = rec.ElapsedMs
	}
	return out
}
