package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuicodon/internal/codon"
	"github.com/verte-zerg/tuicodon/internal/generator"
	"github.com/verte-zerg/tuicodon/internal/model"
	"github.com/verte-zerg/tuicodon/internal/strand"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type recordingJournal struct {
	records []model.RoundRecord
	err     error
}

func (j *recordingJournal) RecordRound(_ context.Context, rec model.RoundRecord) error {
	j.records = append(j.records, rec)
	return j.err
}

func newTestSession(t *testing.T, opts Options) (*Session, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
	opts.Now = clock.Now
	sess, err := NewSession(codon.Standard(), generator.NewWithSeed(7), opts)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return sess, clock
}

func TestNewSessionStartsAtStageOne(t *testing.T) {
	sess, clock := newTestSession(t, Options{CountStart: true})
	st := sess.State()
	if st.Stage != 1 {
		t.Fatalf("expected stage 1, got %d", st.Stage)
	}
	if len(st.TimeData) != 0 || st.Score != 0 || st.Correct != 0 {
		t.Fatalf("expected fresh counters, got %+v", st)
	}
	if !st.StartTime.Equal(clock.now) {
		t.Fatalf("expected start time %v, got %v", clock.now, st.StartTime)
	}
	if got := len([]rune(st.Answer)); got != st.AskLength-1 {
		t.Fatalf("expected answer length %d, got %d", st.AskLength-1, got)
	}
	if st.Display != "5'-"+st.Sequence+"-3'" {
		t.Fatalf("unexpected display %q for %q", st.Display, st.Sequence)
	}
	if st.Accuracy() != 0 || st.AverageSeconds() != 0 {
		t.Fatalf("expected zero metrics before any answer")
	}
}

func TestNewSessionWithoutStartResidue(t *testing.T) {
	sess, _ := newTestSession(t, Options{CountStart: false})
	st := sess.State()
	if got := len([]rune(st.Answer)); got != st.AskLength-2 {
		t.Fatalf("expected answer length %d, got %d", st.AskLength-2, got)
	}
}

func TestSessionInvariantsHold(t *testing.T) {
	sess, clock := newTestSession(t, Options{CountStart: true})
	ctx := context.Background()
	for i := 0; i < 30; i++ {
		clock.Advance(time.Duration(i+1) * 100 * time.Millisecond)
		answer := sess.State().Answer
		var input string
		switch i % 3 {
		case 0:
			input = answer
		case 1:
			input = strings.Repeat("W", len(answer))
		default:
			input = "X"
		}
		if _, err := sess.Submit(ctx, input); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		st := sess.State()
		if st.Score != st.Correct {
			t.Fatalf("score %d != correct %d", st.Score, st.Correct)
		}
		if st.Stage-1 != len(st.TimeData) {
			t.Fatalf("stage %d does not match %d answered rounds", st.Stage, len(st.TimeData))
		}
		if st.Correct > st.Stage-1 {
			t.Fatalf("correct %d exceeds answered rounds %d", st.Correct, st.Stage-1)
		}
	}
	if got := sess.State().Correct; got != 10 {
		t.Fatalf("expected 10 correct rounds, got %d", got)
	}
}

func TestSubmitLengthMismatchOnlyTimes(t *testing.T) {
	sess, clock := newTestSession(t, Options{CountStart: true})
	clock.Advance(1500 * time.Millisecond)
	out, err := sess.Submit(context.Background(), sess.State().Answer+"A")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	st := sess.State()
	if out.Correct || out.Diffed {
		t.Fatalf("expected undiffed wrong outcome, got %+v", out)
	}
	if len(st.TimeData) != 1 || st.TimeData[0] != 1500 {
		t.Fatalf("expected one 1500ms entry, got %v", st.TimeData)
	}
	if st.Wrong.Len() != 0 {
		t.Fatalf("expected empty tally, got %v", st.Wrong.Entries())
	}
	if st.Correct != 0 || st.Score != 0 {
		t.Fatalf("expected no credit, got correct=%d score=%d", st.Correct, st.Score)
	}
	if st.Stage != 2 {
		t.Fatalf("expected stage 2, got %d", st.Stage)
	}
}

func TestSubmitLowercaseIsCorrect(t *testing.T) {
	sess, _ := newTestSession(t, Options{CountStart: true})
	out, err := sess.Submit(context.Background(), strings.ToLower(sess.State().Answer))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !out.Correct {
		t.Fatalf("expected lowercase answer to be correct: %+v", out)
	}
	if st := sess.State(); st.Correct != 1 || st.Score != 1 {
		t.Fatalf("expected one correct round, got %+v", st)
	}
}

func TestApplyChargesBothSymbols(t *testing.T) {
	t0 := time.Unix(100, 0)
	start := State{Answer: "MAK", Stage: 1, StartTime: t0}

	next, out := start.Apply("MRK", t0.Add(2*time.Second))
	if out.Correct || !out.Diffed {
		t.Fatalf("expected diffed wrong outcome, got %+v", out)
	}
	if out.Submitted != "MRK" || out.Expected != "MAK" {
		t.Fatalf("unexpected outcome answers: %+v", out)
	}
	if strings.Join(out.Symbols, "") != "RA" {
		t.Fatalf("expected symbols R,A, got %v", out.Symbols)
	}
	if next.Wrong.Count("R") != 1 || next.Wrong.Count("A") != 1 {
		t.Fatalf("unexpected tally: %v", next.Wrong.Entries())
	}
	if start.Wrong.Len() != 0 || len(start.TimeData) != 0 {
		t.Fatalf("expected receiver to be unchanged")
	}

	next, _ = next.Apply("MAR", t0.Add(3*time.Second))
	want := []model.SymbolCount{
		{Symbol: "R", Count: 2},
		{Symbol: "A", Count: 1},
		{Symbol: "K", Count: 1},
	}
	got := next.Wrong.Entries()
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
	if len(next.TimeData) != 2 || next.TimeData[0] != 2000 || next.TimeData[1] != 3000 {
		t.Fatalf("unexpected time data: %v", next.TimeData)
	}
}

func TestApplyChargesSymbolsAsTyped(t *testing.T) {
	t0 := time.Unix(100, 0)
	next, out := State{Answer: "MKL", Stage: 1, StartTime: t0}.Apply("mkv", t0.Add(time.Second))
	if out.Correct || !out.Diffed {
		t.Fatalf("expected diffed wrong outcome, got %+v", out)
	}
	if out.Submitted != "mkv" {
		t.Fatalf("expected submitted input as typed, got %q", out.Submitted)
	}
	if got := strings.Join(out.Symbols, ","); got != "m,M,k,K,v,L" {
		t.Fatalf("expected symbols m,M,k,K,v,L, got %s", got)
	}
	want := []model.SymbolCount{
		{Symbol: "m", Count: 1},
		{Symbol: "M", Count: 1},
		{Symbol: "k", Count: 1},
		{Symbol: "K", Count: 1},
		{Symbol: "v", Count: 1},
		{Symbol: "L", Count: 1},
	}
	got := next.Wrong.Entries()
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestApplyClampsNegativeElapsed(t *testing.T) {
	t0 := time.Unix(100, 0)
	next, out := State{Answer: "M", Stage: 1, StartTime: t0}.Apply("M", t0.Add(-time.Second))
	if out.Elapsed != 0 || next.TimeData[0] != 0 {
		t.Fatalf("expected zero elapsed, got %v", out.Elapsed)
	}
}

func TestStateMetrics(t *testing.T) {
	st := State{Stage: 4, Correct: 2, Score: 2, TimeData: []int64{1000, 2000, 3500}}
	if got := st.Accuracy(); got != 66.6 {
		t.Fatalf("expected 66.6, got %v", got)
	}
	if got := st.AverageSeconds(); got != 2.166 {
		t.Fatalf("expected 2.166, got %v", got)
	}
}

func TestIsExit(t *testing.T) {
	cases := map[string]bool{
		"exit":  true,
		"Exit":  false,
		"EXIT":  false,
		"exit ": false,
		" exit": false,
		"":      false,
	}
	for in, want := range cases {
		if got := IsExit(in); got != want {
			t.Fatalf("IsExit(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSubmitRecordsJournal(t *testing.T) {
	journal := &recordingJournal{}
	sess, clock := newTestSession(t, Options{
		CountStart: true,
		Variant:    strand.DNATemplate,
		Journal:    journal,
		SessionID:  "s1",
	})
	first := sess.State()
	clock.Advance(750 * time.Millisecond)
	if _, err := sess.Submit(context.Background(), first.Answer); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(journal.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(journal.records))
	}
	rec := journal.records[0]
	if rec.SessionID != "s1" || rec.Stage != 1 || !rec.Correct {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Variant != "dna-template" || rec.Display != first.Display || rec.Sequence != first.Sequence {
		t.Fatalf("unexpected record prompt: %+v", rec)
	}
	if rec.ElapsedMs != 750 {
		t.Fatalf("expected 750ms, got %d", rec.ElapsedMs)
	}
}

func TestSubmitIgnoresJournalFailure(t *testing.T) {
	journal := &recordingJournal{err: errors.New("disk full")}
	sess, _ := newTestSession(t, Options{CountStart: true, Journal: journal})
	if _, err := sess.Submit(context.Background(), "X"); err != nil {
		t.Fatalf("expected journal failure to be ignored, got %v", err)
	}
	if sess.State().Stage != 2 {
		t.Fatalf("expected the drill to advance")
	}
}

func TestSubmitKeepsRoundWhenGenerationFails(t *testing.T) {
	journal := &recordingJournal{}
	sess, clock := newTestSession(t, Options{CountStart: true, Journal: journal})
	before := sess.State()
	ctx := context.Background()

	draw := sess.draw
	sess.draw = func(map[string]struct{}) (generator.Round, error) {
		return generator.Round{}, generator.ErrAttemptsExhausted
	}
	clock.Advance(time.Second)
	if _, err := sess.Submit(ctx, "ZZ"); !errors.Is(err, generator.ErrAttemptsExhausted) {
		t.Fatalf("expected ErrAttemptsExhausted, got %v", err)
	}
	st := sess.State()
	if st.Stage != before.Stage || st.Answer != before.Answer || len(st.TimeData) != 0 || st.Wrong.Len() != 0 {
		t.Fatalf("expected the round to be kept, got %+v", st)
	}
	if len(journal.records) != 0 {
		t.Fatalf("expected nothing journaled, got %d records", len(journal.records))
	}

	sess.draw = draw
	if _, err := sess.Submit(ctx, before.Answer); err != nil {
		t.Fatalf("submit: %v", err)
	}
	st = sess.State()
	if st.Stage != 2 || len(st.TimeData) != st.Stage-1 || st.Correct != 1 {
		t.Fatalf("unexpected state after retry: %+v", st)
	}
}

func TestFocusWeakKeepsGenerating(t *testing.T) {
	sess, _ := newTestSession(t, Options{CountStart: true, FocusWeak: true, WeakTop: 1, WeakFactor: 10})
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		answer := sess.State().Answer
		if _, err := sess.Submit(ctx, strings.Repeat("W", len(answer))); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		st := sess.State()
		if !generator.UniqueFrame(codon.Standard(), st.Sequence, st.HeadLength, st.TailLength) {
			t.Fatalf("round %d has an ambiguous frame: %s", st.Stage, st.Sequence)
		}
	}
	if len(sess.WrongReport()) == 0 {
		t.Fatalf("expected misses to be tallied")
	}
}
