// Package journal records scheduler lifecycle events in SQLite so a
// run can be inspected after the fact.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure-Go driver

	"github.com/nvlled/cutscene"
)

// Journal is an append-only event log.
type Journal struct {
	db *sql.DB
}

// Entry is one recorded event.
type Entry struct {
	ID         int64
	RunID      string
	Task       string
	Kind       string
	Phase      string
	Reason     string
	Frame      int64
	Time       float64
	Error      string
	RecordedAt time.Time
}

// Open creates or opens the journal at path.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// single writer; pragmas below stick to this one connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA busy_timeout = 5000`,
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return j, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// migrate runs idempotent schema migrations.
func (j *Journal) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL,
			task        TEXT NOT NULL,
			kind        TEXT NOT NULL,
			phase       TEXT NOT NULL,
			reason      TEXT NOT NULL DEFAULT '',
			frame       INTEGER NOT NULL,
			time        REAL NOT NULL,
			error       TEXT NOT NULL DEFAULT '',
			recorded_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_run ON events(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_task ON events(task)`,
	}
	for _, m := range migrations {
		if _, err := j.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// Record appends e.
func (j *Journal) Record(e cutscene.Event) error {
	var errText string
	if e.Err != nil {
		errText = e.Err.Error()
	}
	_, err := j.db.Exec(
		`INSERT INTO events (run_id, task, kind, phase, reason, frame, time, error, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID.String(), e.TaskName(), e.Kind.String(), e.Phase.String(), e.Reason.String(),
		e.Frame, e.Time, errText, time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}

// Listener returns a scheduler listener that records every event.
// Failures go to onErr, which may be nil.
func (j *Journal) Listener(onErr func(error)) func(cutscene.Event) {
	return func(e cutscene.Event) {
		if err := j.Record(e); err != nil && onErr != nil {
			onErr(err)
		}
	}
}

// List returns up to limit entries, newest first.
func (j *Journal) List(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, run_id, task, kind, phase, reason, frame, time, error, recorded_at
		FROM events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var recordedAt int64
		if err := rows.Scan(&e.ID, &e.RunID, &e.Task, &e.Kind, &e.Phase, &e.Reason,
			&e.Frame, &e.Time, &e.Error, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.RecordedAt = time.Unix(0, recordedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
