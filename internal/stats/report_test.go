package stats

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuicodon/internal/model"
	"github.com/verte-zerg/tuicodon/internal/store"
)

func TestBuildReport(t *testing.T) {
	st, err := store.Open(store.MemoryDSN)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	id, err := st.CreateSession(ctx, model.SessionInfo{Variant: "rna-template"})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	for i := 0; i < 3; i++ {
		rec := model.RoundRecord{
			SessionID:  id,
			Stage:      i + 1,
			Variant:    "rna-template",
			Expected:   "MAK",
			Submitted:  "MAK",
			Correct:    i != 1,
			ElapsedMs:  int64(1000 * (i + 1)),
			AnsweredAt: time.Unix(int64(i), 0),
		}
		if i == 1 {
			rec.Submitted = "MAR"
			rec.Symbols = []string{"R", "K"}
		}
		if err := st.RecordRound(ctx, rec); err != nil {
			t.Fatalf("record round: %v", err)
		}
	}

	report, err := BuildReport(ctx, st, id)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(report.Rounds))
	}
	if report.Summary.Correct != 2 {
		t.Fatalf("expected 2 correct, got %d", report.Summary.Correct)
	}
	if len(report.SymbolErrors) != 2 || report.SymbolErrors[0].Symbol != "R" {
		t.Fatalf("unexpected symbol errors: %+v", report.SymbolErrors)
	}
	if got := report.TimeData(); len(got) != 3 || got[2] != 3000 {
		t.Fatalf("unexpected time data: %v", got)
	}

	var buf bytes.Buffer
	if err := RenderSummary(&buf, report, 40); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	for _, needle := range []string{"Rounds: 3", "Accuracy: 66.6%", "Avg time: 2s", "Time trend:"} {
		if !strings.Contains(out, needle) {
			t.Fatalf("summary missing %q: %s", needle, out)
		}
	}
}
