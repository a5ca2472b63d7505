// Package repository holds the sqlite-backed stores.
package repository

import (
	"context"
	"database/sql"
	"time"
)

// Entry is one issued REPL command: what was typed and how it went. This is a
// transcript only; navigation state itself is never persisted.
type Entry struct {
	ID        string
	SessionID string
	IssuedAt  time.Time
	Input     string
	Outcome   string
}

// HistoryRepo handles the command transcript.
type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) Insert(ctx context.Context, e Entry) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO command_history(id, session_id, issued_at, input, outcome)
	VALUES (?, ?, ?, ?, ?);
	`, e.ID, e.SessionID, e.IssuedAt, e.Input, e.Outcome)
	return err
}

// ListRecent returns the session's latest entries, newest first.
func (r *HistoryRepo) ListRecent(ctx context.Context, sessionID string, limit int) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, session_id, issued_at, input, outcome
	FROM command_history
	WHERE session_id = ?
	ORDER BY issued_at DESC, rowid DESC
	LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.IssuedAt, &e.Input, &e.Outcome); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Purge drops every entry for the session.
func (r *HistoryRepo) Purge(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM command_history WHERE session_id = ?`, sessionID)
	return err
}
