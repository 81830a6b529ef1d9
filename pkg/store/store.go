// Package store persists option sets and form submissions in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/goliatone/go-formblocks/pkg/fields"
)

// Submission is one stored form submission.
type Submission struct {
	ID       int64
	FormName string
	Data     map[string]string
	SenderIP string
	Created  time.Time
}

// Store wraps a SQLite database holding option sets and submissions. It
// implements options.Provider for choice fields.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL allows concurrent readers while a submission is being written; the
	// busy timeout makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS option_sets (
    set_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    value TEXT NOT NULL,
    label TEXT NOT NULL,
    PRIMARY KEY (set_id, position)
);
CREATE TABLE IF NOT EXISTS submissions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    form_name TEXT NOT NULL,
    data TEXT NOT NULL,
    sender_ip TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);
`)
	return err
}

// OptionSet returns the ordered options stored under id.
func (s *Store) OptionSet(ctx context.Context, id string) ([]fields.Option, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT value, label FROM option_sets WHERE set_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []fields.Option
	for rows.Next() {
		var opt fields.Option
		if err := rows.Scan(&opt.Value, &opt.Label); err != nil {
			return nil, err
		}
		out = append(out, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("store: option set %q not found", id)
	}
	return out, nil
}

// PutOptionSet replaces the options stored under id, preserving order.
func (s *Store) PutOptionSet(ctx context.Context, id string, opts []fields.Option) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM option_sets WHERE set_id = ?`, id); err != nil {
		return err
	}
	for i, opt := range opts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO option_sets (set_id, position, value, label) VALUES (?, ?, ?, ?)`,
			id, i, opt.Value, opt.Label); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SaveSubmission persists one validated submission and returns its row ID.
func (s *Store) SaveSubmission(ctx context.Context, formName string, data map[string]string, senderIP string) (int64, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return 0, fmt.Errorf("store: encode submission: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (form_name, data, sender_ip, created_at) VALUES (?, ?, ?, ?)`,
		formName, string(payload), senderIP, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Submissions lists stored submissions for a form, newest first.
func (s *Store) Submissions(ctx context.Context, formName string) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, form_name, data, sender_ip, created_at FROM submissions WHERE form_name = ? ORDER BY id DESC`,
		formName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var (
			sub     Submission
			raw     string
			created string
		)
		if err := rows.Scan(&sub.ID, &sub.FormName, &raw, &sub.SenderIP, &created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(raw), &sub.Data); err != nil {
			return nil, fmt.Errorf("store: decode submission %d: %w", sub.ID, err)
		}
		if ts, err := time.Parse(time.RFC3339, created); err == nil {
			sub.Created = ts
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}
