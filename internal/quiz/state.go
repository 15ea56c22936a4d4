// Package quiz runs the ask, evaluate and re-ask cycle of a translation drill.
package quiz

import (
	"strings"
	"time"

	"github.com/verte-zerg/tuicodon/internal/stats"
)

// ExitCommand ends a session when submitted verbatim.
const ExitCommand = "exit"

// IsExit reports whether line is the exit command. The match is exact and
// case-sensitive.
func IsExit(line string) bool {
	return line == ExitCommand
}

// State is the round-trip state of a session. Stage is the 1-based number of
// the round awaiting an answer, so Stage-1 rounds have been answered.
type State struct {
	AskLength  int
	HeadLength int
	TailLength int
	// Sequence is the padded coding strand in RNA letters.
	Sequence string
	// Display is Sequence as presented for the session's strand variant.
	Display   string
	Answer    string
	Score     int
	Correct   int
	Stage     int
	StartTime time.Time
	// TimeData holds the elapsed milliseconds of every answered round.
	TimeData []int64
	Wrong    Tally
}

// Outcome describes how a submission was judged.
type Outcome struct {
	Correct  bool
	Expected string
	// Submitted is the input as typed.
	Submitted string
	Elapsed   time.Duration
	// Diffed is set when the submission had the answer's length and was
	// compared position by position.
	Diffed bool
	// Symbols lists every symbol charged to the tally, with repeats.
	Symbols []string
}

// Accuracy is the percentage of answered rounds that were correct.
func (s State) Accuracy() float64 {
	return stats.Accuracy(s.Correct, s.Stage-1)
}

// AverageSeconds is the mean answer time.
func (s State) AverageSeconds() float64 {
	return stats.AverageSeconds(s.TimeData)
}

// Apply judges input against the current answer and returns the next state.
// The receiver is left untouched. Stage and the prompt are not advanced.
func (s State) Apply(input string, at time.Time) (State, Outcome) {
	elapsed := at.Sub(s.StartTime)
	if elapsed < 0 {
		elapsed = 0
	}

	next := s
	next.TimeData = append(append(make([]int64, 0, len(s.TimeData)+1), s.TimeData...), elapsed.Milliseconds())
	next.Wrong = s.Wrong.clone()

	out := Outcome{
		Expected:  s.Answer,
		Submitted: input,
		Elapsed:   elapsed,
	}
	if strings.ToUpper(input) == s.Answer {
		next.Score++
		next.Correct++
		out.Correct = true
		return next, out
	}

	// Misses are charged with the characters as typed.
	got := []rune(input)
	want := []rune(s.Answer)
	if len(got) != len(want) {
		return next, out
	}
	out.Diffed = true
	for i := range want {
		if got[i] == want[i] {
			continue
		}
		for _, sym := range []string{string(got[i]), string(want[i])} {
			next.Wrong.Add(sym)
			out.Symbols = append(out.Symbols, sym)
		}
	}
	return next, out
}
