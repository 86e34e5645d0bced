// Package history persists publish-run reports in a local SQLite database
// so `blogpub history` can show what was published when, and with what
// outcome.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nnduc/blogpub/internal/pipeline"
)

// Store is a SQLite-backed record of publish runs.
type Store struct {
	db *sql.DB
}

// Entry is one recorded publish run.
type Entry struct {
	RunID       string
	StartedAt   time.Time
	FinishedAt  time.Time
	Outcome     string
	FailedStage string
	HeadCommit  string
	Stages      []pipeline.StageResult
}

// Open opens (creating if needed) the history database at dbPath.
// Use ":memory:" for an in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		failed_stage TEXT,
		head_commit TEXT,
		stages BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores a finished run report.
func (s *Store) Record(ctx context.Context, report *pipeline.Report) error {
	stages, err := json.Marshal(report.Stages)
	if err != nil {
		return fmt.Errorf("marshal stage results: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at, finished_at, outcome, failed_stage, head_commit, stages)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		report.RunID,
		report.StartedAt.UnixMilli(),
		report.FinishedAt.UnixMilli(),
		report.Outcome,
		string(report.FailedStage),
		report.HeadCommit,
		stages,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, started_at, finished_at, outcome, failed_stage, head_commit, stages
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var started, finished int64
		var stages []byte
		if err := rows.Scan(&e.RunID, &started, &finished, &e.Outcome, &e.FailedStage, &e.HeadCommit, &stages); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		e.StartedAt = time.UnixMilli(started)
		e.FinishedAt = time.UnixMilli(finished)
		if err := json.Unmarshal(stages, &e.Stages); err != nil {
			return nil, fmt.Errorf("unmarshal stage results: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
