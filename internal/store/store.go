// Package store persists assessment sessions in SQLite. One row per
// (project, stage, accelerator) holds the current session as JSON; every
// save also appends an immutable history revision.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"

	"github.com/joss/acelera/internal/rubric"
	"github.com/joss/acelera/internal/session"
)

// SessionStore is the persistence surface the workflow engine and the
// autosave controller depend on.
type SessionStore interface {
	// Load returns the stored session, or (nil, nil) when none exists.
	Load(ctx context.Context, projectID string, stage, accelerator int) (*session.Session, error)
	// Save upserts the current session and appends a history revision.
	Save(ctx context.Context, s *session.Session) error
	// History lists past revisions, newest first.
	History(ctx context.Context, projectID string, stage, accelerator, limit int) ([]Revision, error)
	// Delete removes the current row and its history.
	Delete(ctx context.Context, projectID string, stage, accelerator int) error
	// Ping verifies the connection is alive.
	Ping(ctx context.Context) error
	// Close releases the database handle.
	Close() error
}

// Revision is one saved snapshot of a session.
type Revision struct {
	ID      string    `json:"id"`
	SavedAt time.Time `json:"saved_at"`
	Step    int       `json:"step"`
}

// SQLiteStore implements SessionStore over a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

var _ SessionStore = (*SQLiteStore)(nil)

// Open creates or opens the store at path and migrates the schema.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		project_id   TEXT NOT NULL,
		stage        INTEGER NOT NULL,
		accelerator  INTEGER NOT NULL,
		kind         TEXT NOT NULL,
		session_json TEXT NOT NULL,
		revision     TEXT NOT NULL,
		saved_at     TEXT NOT NULL,
		PRIMARY KEY (project_id, stage, accelerator)
	);

	CREATE TABLE IF NOT EXISTS record_history (
		revision     TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL,
		stage        INTEGER NOT NULL,
		accelerator  INTEGER NOT NULL,
		current_step INTEGER NOT NULL,
		session_json TEXT NOT NULL,
		saved_at     TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_history_record
		ON record_history(project_id, stage, accelerator, saved_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load returns the stored session for the key, or (nil, nil) when absent.
// Legacy answer records are migrated to the current shape on the way out.
func (s *SQLiteStore) Load(ctx context.Context, projectID string, stage, accelerator int) (*session.Session, error) {
	var kind, blob string
	err := s.db.QueryRowContext(ctx,
		`SELECT kind, session_json FROM records WHERE project_id = ? AND stage = ? AND accelerator = ?`,
		projectID, stage, accelerator,
	).Scan(&kind, &blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	v, err := rubric.Get(kind)
	if err != nil {
		return nil, fmt.Errorf("stored session: %w", err)
	}
	return session.Decode([]byte(blob), v)
}

// Save upserts the session row and appends a history revision. Last write
// wins on the current row; history keeps every revision.
func (s *SQLiteStore) Save(ctx context.Context, sess *session.Session) error {
	if sess == nil || sess.ProjectID == "" {
		return ErrInvalidID
	}

	blob, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	revision := ulid.Make().String()
	savedAt := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO records (project_id, stage, accelerator, kind, session_json, revision, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_id, stage, accelerator) DO UPDATE SET
			kind = excluded.kind,
			session_json = excluded.session_json,
			revision = excluded.revision,
			saved_at = excluded.saved_at`,
		sess.ProjectID, sess.Stage, sess.Accelerator, sess.Kind, string(blob), revision, savedAt,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO record_history (revision, project_id, stage, accelerator, current_step, session_json, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		revision, sess.ProjectID, sess.Stage, sess.Accelerator, sess.CurrentStep, string(blob), savedAt,
	)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}

	return tx.Commit()
}

// History lists saved revisions for the key, newest first.
func (s *SQLiteStore) History(ctx context.Context, projectID string, stage, accelerator, limit int) ([]Revision, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT revision, saved_at, current_step FROM record_history
		WHERE project_id = ? AND stage = ? AND accelerator = ?
		ORDER BY saved_at DESC LIMIT ?`,
		projectID, stage, accelerator, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var revisions []Revision
	for rows.Next() {
		var rev Revision
		var savedAt string
		if err := rows.Scan(&rev.ID, &savedAt, &rev.Step); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		rev.SavedAt, _ = time.Parse(time.RFC3339Nano, savedAt)
		revisions = append(revisions, rev)
	}
	return revisions, rows.Err()
}

// Delete removes the session row and its full history.
func (s *SQLiteStore) Delete(ctx context.Context, projectID string, stage, accelerator int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM records WHERE project_id = ? AND stage = ? AND accelerator = ?`,
		projectID, stage, accelerator,
	); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM record_history WHERE project_id = ? AND stage = ? AND accelerator = ?`,
		projectID, stage, accelerator,
	); err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	return tx.Commit()
}

// Ping verifies the connection is alive.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
