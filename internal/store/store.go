// Package store keeps the round journal of a drill in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/tuicodon/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// MemoryDSN keeps the journal for the lifetime of the process only.
const MemoryDSN = ":memory:"

// Store wraps SQLite access for round data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if path == "" {
		path = MemoryDSN
	}
	if path != MemoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			variant TEXT NOT NULL,
			table_path TEXT NOT NULL,
			count_start INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS rounds (
			session_id TEXT NOT NULL,
			stage INTEGER NOT NULL,
			variant TEXT NOT NULL,
			sequence TEXT NOT NULL,
			display TEXT NOT NULL,
			expected TEXT NOT NULL,
			submitted TEXT NOT NULL,
			correct INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			answered_at TEXT NOT NULL,
			PRIMARY KEY (session_id, stage)
		);`,
		`CREATE TABLE IF NOT EXISTS symbol_errors (
			session_id TEXT NOT NULL,
			symbol TEXT NOT NULL,
			count INTEGER NOT NULL,
			first_seen INTEGER NOT NULL,
			PRIMARY KEY (session_id, symbol)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// CreateSession registers a session and returns its id. A blank info.ID gets a fresh UUID.
func (s *Store) CreateSession(ctx context.Context, info model.SessionInfo) (string, error) {
	if info.ID == "" {
		info.ID = uuid.NewString()
	}
	if info.StartedAt.IsZero() {
		info.StartedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at, variant, table_path, count_start) VALUES (?, ?, ?, ?, ?)`,
		info.ID,
		info.StartedAt.Format(time.RFC3339Nano),
		info.Variant,
		info.TablePath,
		boolToInt(info.CountStart),
	)
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

// RecordRound stores an answered round and folds its symbols into the error tally.
func (s *Store) RecordRound(ctx context.Context, rec model.RoundRecord) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO rounds (session_id, stage, variant, sequence, display, expected, submitted, correct, elapsed_ms, answered_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID,
		rec.Stage,
		rec.Variant,
		rec.Sequence,
		rec.Display,
		rec.Expected,
		rec.Submitted,
		boolToInt(rec.Correct),
		rec.ElapsedMs,
		rec.AnsweredAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	if len(rec.Symbols) > 0 {
		var next int
		if err = tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(first_seen), 0) FROM symbol_errors WHERE session_id = ?`,
			rec.SessionID,
		).Scan(&next); err != nil {
			return err
		}
		for _, sym := range rec.Symbols {
			var count int
			err = tx.QueryRowContext(ctx,
				`SELECT count FROM symbol_errors WHERE session_id = ? AND symbol = ?`,
				rec.SessionID, sym,
			).Scan(&count)
			switch {
			case errors.Is(err, sql.ErrNoRows):
				next++
				_, err = tx.ExecContext(ctx,
					`INSERT INTO symbol_errors (session_id, symbol, count, first_seen) VALUES (?, ?, 1, ?)`,
					rec.SessionID, sym, next)
			case err == nil:
				_, err = tx.ExecContext(ctx,
					`UPDATE symbol_errors SET count = count + 1 WHERE session_id = ? AND symbol = ?`,
					rec.SessionID, sym)
			}
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// ListRounds returns a session's rounds ordered by stage.
func (s *Store) ListRounds(ctx context.Context, sessionID string) ([]model.RoundRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT stage, variant, sequence, display, expected, submitted, correct, elapsed_ms, answered_at
		 FROM rounds
		 WHERE session_id = ?
		 ORDER BY stage ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.RoundRecord
	for rows.Next() {
		rec := model.RoundRecord{SessionID: sessionID}
		var correct int
		var answeredAt string
		if err := rows.Scan(&rec.Stage, &rec.Variant, &rec.Sequence, &rec.Display, &rec.Expected, &rec.Submitted, &correct, &rec.ElapsedMs, &answeredAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, answeredAt)
		if err != nil {
			return nil, err
		}
		rec.AnsweredAt = parsed
		rec.Correct = correct != 0
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListSymbolErrors returns a session's wrong-answer tally in first-seen order.
func (s *Store) ListSymbolErrors(ctx context.Context, sessionID string) ([]model.SymbolCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT symbol, count FROM symbol_errors WHERE session_id = ? ORDER BY first_seen ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.SymbolCount
	for rows.Next() {
		var sc model.SymbolCount
		if err := rows.Scan(&sc.Symbol, &sc.Count); err != nil {
			return nil, err
		}
		result = append(result, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Summary aggregates a session's rounds.
func (s *Store) Summary(ctx context.Context, sessionID string) (model.SessionSummary, error) {
	summary := model.SessionSummary{SessionID: sessionID}
	var startedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT started_at, variant FROM sessions WHERE id = ?`, sessionID,
	).Scan(&startedAt, &summary.Variant)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return summary, fmt.Errorf("session %s not found", sessionID)
		}
		return summary, err
	}
	if summary.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return summary, err
	}
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(correct), 0), COALESCE(SUM(elapsed_ms), 0) FROM rounds WHERE session_id = ?`,
		sessionID,
	).Scan(&summary.Rounds, &summary.Correct, &summary.TotalMs)
	if err != nil {
		return summary, err
	}
	return summary, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
