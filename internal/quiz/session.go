package quiz

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/tuicodon/internal/codon"
	"github.com/verte-zerg/tuicodon/internal/generator"
	"github.com/verte-zerg/tuicodon/internal/model"
	"github.com/verte-zerg/tuicodon/internal/stats"
	"github.com/verte-zerg/tuicodon/internal/strand"
)

const (
	DefaultWeakTop    = 3
	DefaultWeakFactor = 2.0
)

// Journal receives every answered round.
type Journal interface {
	RecordRound(ctx context.Context, rec model.RoundRecord) error
}

// Options configures a Session.
type Options struct {
	Variant    strand.Variant
	CountStart bool
	FocusWeak  bool
	WeakTop    int
	WeakFactor float64

	SessionID string
	Journal   Journal
	Logger    *zap.Logger
	Now       func() time.Time
}

// Session owns the state of one drill and the collaborators that advance it.
type Session struct {
	table *codon.Table
	gen   *generator.Generator
	opts  Options
	log   *zap.Logger
	state State

	draw func(weak map[string]struct{}) (generator.Round, error)
}

// NewSession prepares the first round.
func NewSession(table *codon.Table, gen *generator.Generator, opts Options) (*Session, error) {
	if table == nil {
		return nil, fmt.Errorf("codon table is required")
	}
	if gen == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.WeakTop <= 0 {
		opts.WeakTop = DefaultWeakTop
	}
	if opts.WeakFactor <= 0 {
		opts.WeakFactor = DefaultWeakFactor
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		table: table,
		gen:   gen,
		opts:  opts,
		log:   log,
	}
	s.draw = s.generateRound
	first, err := s.nextRound(State{})
	if err != nil {
		return nil, err
	}
	s.state = first
	return s, nil
}

// State returns a snapshot of the session state.
func (s *Session) State() State {
	return s.state
}

// Variant returns the strand variant prompts are shown in.
func (s *Session) Variant() strand.Variant {
	return s.opts.Variant
}

// WrongReport returns the wrong-answer tally in first-touch order.
func (s *Session) WrongReport() []model.SymbolCount {
	return s.state.Wrong.Entries()
}

// Submit judges input, records it and moves to the next round. When the next
// round cannot be generated the session is left on the current round.
// Journal failures are logged and do not stop the drill.
func (s *Session) Submit(ctx context.Context, input string) (Outcome, error) {
	prev := s.state
	judged, out := prev.Apply(input, s.opts.Now())
	next, err := s.nextRound(judged)
	if err != nil {
		return Outcome{}, err
	}
	s.state = next

	if s.opts.Journal != nil {
		rec := model.RoundRecord{
			SessionID:  s.opts.SessionID,
			Stage:      prev.Stage,
			Variant:    s.opts.Variant.String(),
			Sequence:   prev.Sequence,
			Display:    prev.Display,
			Expected:   out.Expected,
			Submitted:  out.Submitted,
			Correct:    out.Correct,
			ElapsedMs:  out.Elapsed.Milliseconds(),
			AnsweredAt: prev.StartTime.Add(out.Elapsed),
			Symbols:    out.Symbols,
		}
		if err := s.opts.Journal.RecordRound(ctx, rec); err != nil {
			s.log.Warn("failed to record round", zap.Int("stage", prev.Stage), zap.Error(err))
		}
	}

	s.log.Debug("round answered",
		zap.Int("stage", prev.Stage),
		zap.Bool("correct", out.Correct),
		zap.Bool("diffed", out.Diffed),
		zap.Duration("elapsed", out.Elapsed),
	)
	return out, nil
}

// nextRound returns st moved onto a freshly generated round.
func (s *Session) nextRound(st State) (State, error) {
	weak := s.weakSymbols(st.Wrong)
	round, err := s.draw(weak)
	if err != nil {
		return st, fmt.Errorf("failed to generate round %d: %w", st.Stage+1, err)
	}

	display, err := strand.Present(round.Sequence, s.opts.Variant)
	if err != nil {
		return st, fmt.Errorf("failed to present round %d: %w", st.Stage+1, err)
	}

	st.AskLength = round.AskLength
	st.HeadLength = round.HeadLength
	st.TailLength = round.TailLength
	st.Sequence = round.Sequence
	st.Display = display
	st.Answer = round.Answer
	st.Stage++
	st.StartTime = s.opts.Now()

	s.log.Debug("round generated",
		zap.Int("stage", st.Stage),
		zap.Int("ask_length", round.AskLength),
		zap.Int("attempts", round.Attempts),
		zap.Int("weak_symbols", len(weak)),
	)
	return st, nil
}

func (s *Session) generateRound(weak map[string]struct{}) (generator.Round, error) {
	askLength := s.gen.AskLength()
	head := s.gen.Padding()
	tail := s.gen.Padding()
	if len(weak) > 0 {
		return s.gen.GenerateWeighted(s.table, askLength, head, tail, s.opts.CountStart, weak, s.opts.WeakFactor)
	}
	return s.gen.Generate(s.table, askLength, head, tail, s.opts.CountStart)
}

func (s *Session) weakSymbols(wrong Tally) map[string]struct{} {
	if !s.opts.FocusWeak {
		return nil
	}
	return stats.SelectWeakSymbols(wrong.Entries(), s.opts.WeakTop)
}
