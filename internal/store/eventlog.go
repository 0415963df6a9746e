package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

const (
	EventPhraseSelect  = "phrase.select"
	EventFavoriteAdd   = "favorite.add"
	EventFavoriteDrop  = "favorite.remove"
	EventCustomAdd     = "custom.add"
	EventCustomEdit    = "custom.edit"
	EventCustomDelete  = "custom.delete"
	defaultEventsLimit = 50
)

// Event is one user action recorded in the activity log.
type Event struct {
	ID       int64     `json:"id"`
	At       time.Time `json:"at"`
	Type     string    `json:"type"`
	Phrase   string    `json:"phrase,omitempty"`
	Scope    string    `json:"scope,omitempty"`
	Category string    `json:"category,omitempty"`
}

type PhraseCount struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// EventLog is an append-only SQLite log of user actions.
type EventLog struct {
	db *sql.DB
}

func OpenEventLog(ctx context.Context, path string) (*EventLog, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the TUI and a CLI invocation read while the other writes.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateEventLog(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &EventLog{db: db}, nil
}

func migrateEventLog(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			at_unixms INTEGER NOT NULL,
			type TEXT NOT NULL,
			phrase TEXT NOT NULL DEFAULT '',
			scope TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_type ON events(type);`,
		`CREATE INDEX IF NOT EXISTS idx_events_at ON events(at_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (l *EventLog) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

func (l *EventLog) Append(ctx context.Context, ev Event) error {
	if l == nil {
		return errors.New("event log closed")
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO events(at_unixms, type, phrase, scope, category) VALUES(?, ?, ?, ?, ?)`,
		ev.At.UnixMilli(), ev.Type, ev.Phrase, ev.Scope, ev.Category,
	)
	return err
}

// List returns the most recent events, newest first.
func (l *EventLog) List(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = defaultEventsLimit
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, at_unixms, type, phrase, scope, category FROM events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var (
			ev Event
			ms int64
		)
		if err := rows.Scan(&ev.ID, &ms, &ev.Type, &ev.Phrase, &ev.Scope, &ev.Category); err != nil {
			return nil, err
		}
		ev.At = time.UnixMilli(ms).UTC()
		out = append(out, ev)
	}
	return out, rows.Err()
}

// TopPhrases counts selections per phrase, most used first (ties alphabetical).
func (l *EventLog) TopPhrases(ctx context.Context, limit int) ([]PhraseCount, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT phrase, COUNT(*) AS n FROM events WHERE type = ? AND phrase <> ''
		 GROUP BY phrase ORDER BY n DESC, phrase ASC LIMIT ?`, EventPhraseSelect, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []PhraseCount{}
	for rows.Next() {
		var pc PhraseCount
		if err := rows.Scan(&pc.Phrase, &pc.Count); err != nil {
			return nil, err
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}
