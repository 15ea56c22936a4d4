// Package generator builds padded open reading frames for translation drills.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/verte-zerg/tuicodon/internal/codon"
)

const (
	MinAskLength = 8
	MaxAskLength = 10
	MinPadding   = 1
	MaxPadding   = 2

	// MaxAttempts caps regeneration when a draw contains a decoy start/stop motif.
	MaxAttempts = 10000
)

// ErrAttemptsExhausted is returned when no unambiguous sequence was drawn within MaxAttempts.
var ErrAttemptsExhausted = errors.New("sequence generation attempts exhausted")

// Round is one generated drill item.
type Round struct {
	// Sequence is the padded coding strand in RNA letters.
	Sequence string
	// Answer is the expected amino acid chain.
	Answer     string
	AskLength  int
	HeadLength int
	TailLength int
	// Attempts counts draws including rejected ones.
	Attempts int
}

// Generator produces randomized reading frames.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// AskLength draws the codon count of a round, start and stop included.
func (g *Generator) AskLength() int {
	return MinAskLength + g.rnd.Intn(MaxAskLength-MinAskLength+1)
}

// Padding draws an untranslated flank length.
func (g *Generator) Padding() int {
	return MinPadding + g.rnd.Intn(MaxPadding-MinPadding+1)
}

// Generate draws interior codons uniformly from the table's universe.
// When countStart is set the start codon's residue leads the answer.
func (g *Generator) Generate(table *codon.Table, askLength, headLength, tailLength int, countStart bool) (Round, error) {
	codons := table.Codons()
	pick := func() string {
		return codons[g.rnd.Intn(len(codons))]
	}
	return g.generate(table, askLength, headLength, tailLength, countStart, pick)
}

// GenerateWeighted biases interior codons toward those translating to weak residues.
func (g *Generator) GenerateWeighted(table *codon.Table, askLength, headLength, tailLength int, countStart bool, weakSet map[string]struct{}, factor float64) (Round, error) {
	codons := table.Codons()
	weights := make([]float64, len(codons))
	total := 0.0
	for i, c := range codons {
		w := 1.0
		aa, _ := table.Translate(c)
		if _, ok := weakSet[aa]; ok {
			w += factor
		}
		weights[i] = w
		total += w
	}
	pick := func() string {
		r := g.rnd.Float64() * total
		acc := 0.0
		for i, w := range weights {
			acc += w
			if r <= acc {
				return codons[i]
			}
		}
		return codons[len(codons)-1]
	}
	return g.generate(table, askLength, headLength, tailLength, countStart, pick)
}

func (g *Generator) generate(table *codon.Table, askLength, headLength, tailLength int, countStart bool, pick func() string) (Round, error) {
	if askLength < 2 {
		return Round{}, fmt.Errorf("ask length must be >= 2, got %d", askLength)
	}
	if headLength < 0 || tailLength < 0 {
		return Round{}, fmt.Errorf("padding must be >= 0, got head=%d tail=%d", headLength, tailLength)
	}
	start := table.Start()
	stop := table.Stop()

	var seq, answer strings.Builder
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		seq.Reset()
		answer.Reset()

		for i := 0; i < headLength; i++ {
			seq.WriteByte(g.base())
		}
		first := start[g.rnd.Intn(len(start))]
		seq.WriteString(first)
		if countStart {
			aa, _ := table.Translate(first)
			answer.WriteString(aa)
		}
		for i := 1; i < askLength-1; i++ {
			c := pick()
			aa, _ := table.Translate(c)
			seq.WriteString(c)
			answer.WriteString(aa)
		}
		seq.WriteString(stop[g.rnd.Intn(len(stop))])
		for i := 0; i < tailLength; i++ {
			seq.WriteByte(g.base())
		}

		candidate := seq.String()
		if !UniqueFrame(table, candidate, headLength, tailLength) {
			continue
		}
		return Round{
			Sequence:   candidate,
			Answer:     answer.String(),
			AskLength:  askLength,
			HeadLength: headLength,
			TailLength: tailLength,
			Attempts:   attempt,
		}, nil
	}
	return Round{}, fmt.Errorf("%w: %d attempts (ask=%d head=%d tail=%d)", ErrAttemptsExhausted, MaxAttempts, askLength, headLength, tailLength)
}

func (g *Generator) base() byte {
	return codon.Bases[g.rnd.Intn(len(codon.Bases))]
}

// UniqueFrame reports whether the only start motif in seq sits at headLength
// and the only stop motif sits at len(seq)-tailLength-3, over every offset.
func UniqueFrame(table *codon.Table, seq string, headLength, tailLength int) bool {
	stopAt := len(seq) - tailLength - 3
	for i := 0; i+3 <= len(seq); i++ {
		window := seq[i : i+3]
		if table.IsStart(window) && i != headLength {
			return false
		}
		if table.IsStop(window) && i != stopAt {
			return false
		}
	}
	return true
}
