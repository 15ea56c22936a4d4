// Package model defines shared data structures.
package model

import "time"

// Config defines drill settings.
type Config struct {
	TablePath  string
	Variant    string
	Seed       int64
	CountStart bool
	FocusWeak  bool
	WeakTop    int
	WeakFactor float64
	Plain      bool
	Review     bool
	LogFile    string
	Debug      bool
}

// SessionInfo describes a drill session when it is opened in the journal.
type SessionInfo struct {
	ID         string
	StartedAt  time.Time
	Variant    string
	TablePath  string
	CountStart bool
}

// RoundRecord captures one answered round.
type RoundRecord struct {
	SessionID  string
	Stage      int
	Variant    string
	Sequence   string
	Display    string
	Expected   string
	Submitted  string
	Correct    bool
	ElapsedMs  int64
	AnsweredAt time.Time
	// Symbols lists every symbol charged by positional diffing, with repeats.
	Symbols []string
}

// SymbolCount is a wrong-answer tally entry.
type SymbolCount struct {
	Symbol string
	Count  int
}

// SessionSummary aggregates journal rows for a session.
type SessionSummary struct {
	SessionID string
	StartedAt time.Time
	Variant   string
	Rounds    int
	Correct   int
	TotalMs   int64
}
