// Package store persists discarded conversation transcripts to a local
// SQLite database so a credential or persona change never silently
// destroys a chat the writer may want back.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"penpal/internal/companion"
)

// Archive is a SQLite-backed transcript store. It implements
// companion.Archiver.
type Archive struct {
	db   *sql.DB
	path string
}

// TranscriptInfo summarizes one archived transcript.
type TranscriptInfo struct {
	ID           string
	ArchivedAt   time.Time
	MessageCount int
}

// NewArchive opens (creating if needed) the archive database at path.
func NewArchive(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	a := &Archive{db: db, path: path}
	if err := a.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

func (a *Archive) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS transcripts (
		id            TEXT PRIMARY KEY,
		archived_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		message_count INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS messages (
		transcript_id TEXT NOT NULL,
		seq           INTEGER NOT NULL,
		role          TEXT NOT NULL,
		text          TEXT NOT NULL,
		PRIMARY KEY (transcript_id, seq),
		FOREIGN KEY (transcript_id) REFERENCES transcripts(id)
	);
	CREATE INDEX IF NOT EXISTS idx_transcripts_archived
		ON transcripts(archived_at DESC);
	`
	if _, err := a.db.Exec(schema); err != nil {
		return fmt.Errorf("init archive schema: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Path returns the database file location.
func (a *Archive) Path() string {
	return a.path
}

// SaveTranscript stores a discarded session transcript atomically.
// Empty transcripts are skipped; there is nothing worth keeping.
func (a *Archive) SaveTranscript(id string, messages []companion.Message) error {
	if len(messages) == 0 {
		return nil
	}

	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("begin archive tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO transcripts (id, message_count) VALUES (?, ?)`,
		id, len(messages),
	); err != nil {
		return fmt.Errorf("insert transcript %s: %w", id, err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO messages (transcript_id, seq, role, text) VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare message insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range messages {
		if _, err := stmt.Exec(id, i, string(m.Role), m.Text); err != nil {
			return fmt.Errorf("insert message %d of %s: %w", i, id, err)
		}
	}

	return tx.Commit()
}

// ListTranscripts returns the most recently archived transcripts,
// newest first.
func (a *Archive) ListTranscripts(limit int) ([]TranscriptInfo, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := a.db.Query(
		`SELECT id, archived_at, message_count
		 FROM transcripts ORDER BY archived_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	defer rows.Close()

	var out []TranscriptInfo
	for rows.Next() {
		var info TranscriptInfo
		if err := rows.Scan(&info.ID, &info.ArchivedAt, &info.MessageCount); err != nil {
			return nil, fmt.Errorf("scan transcript row: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// GetTranscript loads the messages of one archived transcript in order.
func (a *Archive) GetTranscript(id string) ([]companion.Message, error) {
	rows, err := a.db.Query(
		`SELECT role, text FROM messages
		 WHERE transcript_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("load transcript %s: %w", id, err)
	}
	defer rows.Close()

	var out []companion.Message
	for rows.Next() {
		var role, text string
		if err := rows.Scan(&role, &text); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		out = append(out, companion.Message{Role: companion.Role(role), Text: text})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("transcript %s not found", id)
	}
	return out, nil
}
