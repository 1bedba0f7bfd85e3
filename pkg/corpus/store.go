package corpus

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

var (
	// ErrSpeakerNotFound is returned when no speaker has the requested name.
	// It wraps sql.ErrNoRows.
	ErrSpeakerNotFound = fmt.Errorf("speaker not found: %w", sql.ErrNoRows)
	// ErrEmptyText is returned when a speaker is stored without any text.
	ErrEmptyText = errors.New("speaker text is empty")
	// ErrEmptyName is returned when a speaker is stored without a name.
	ErrEmptyName = errors.New("speaker name is empty")
)

// SetupSchema initializes the speaker and history tables in the provided
// database. It is idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {

	const (
		schemaSpeakers = `
CREATE TABLE IF NOT EXISTS speakers (
    speaker_id INTEGER PRIMARY KEY,
    speaker_name TEXT NOT NULL UNIQUE,
    speaker_text TEXT NOT NULL,
    created_at INTEGER NOT NULL
);
`
		schemaIdentifications = `
CREATE TABLE IF NOT EXISTS identifications (
    identification_id INTEGER PRIMARY KEY,
    speaker_a TEXT NOT NULL,
    speaker_b TEXT NOT NULL,
    model_order INTEGER NOT NULL,
    query_length INTEGER NOT NULL,
    score_a REAL NOT NULL,
    score_b REAL NOT NULL,
    label TEXT NOT NULL,
    created_at INTEGER NOT NULL
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	// If the transaction succeeds, tx.Commit() will be called first, and the rollback will do nothing.
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaSpeakers); err != nil {
		return fmt.Errorf("could not create speakers schema: %w", err)
	}

	if _, err = tx.Exec(schemaIdentifications); err != nil {
		return fmt.Errorf("could not create identifications schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// Store is the entry point for reading and writing speakers and history. It holds
// the database connection and prepared statements.
type Store struct {
	db                      *sql.DB
	stmtPutSpeaker          *sql.Stmt
	stmtGetSpeaker          *sql.Stmt
	stmtListSpeakers        *sql.Stmt
	stmtInsertHistory       *sql.Stmt
	stmtHistory             *sql.Stmt
	stmtCountSpeakers       *sql.Stmt
	stmtCountHistoryByLabel *sql.Stmt
	logger                  *slog.Logger
}

// NewStore prepares all statements against db, which must already have the schema.
// If any statement fails to prepare, the ones already prepared are closed.
func NewStore(db *sql.DB) (*Store, error) {
	s := &Store{
		db:     db,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	stmts := []struct {
		dst   **sql.Stmt
		name  string
		query string
	}{
		{&s.stmtPutSpeaker, "put speaker", `INSERT INTO speakers (speaker_name, speaker_text, created_at) VALUES (?, ?, ?) ON CONFLICT(speaker_name) DO UPDATE SET speaker_text=excluded.speaker_text RETURNING speaker_id;`},
		{&s.stmtGetSpeaker, "get speaker", `SELECT speaker_id, speaker_text, created_at FROM speakers WHERE speaker_name = ?;`},
		{&s.stmtListSpeakers, "list speakers", `SELECT speaker_id, speaker_name, length(speaker_text), created_at FROM speakers ORDER BY speaker_name;`},
		{&s.stmtInsertHistory, "insert history", `INSERT INTO identifications (speaker_a, speaker_b, model_order, query_length, score_a, score_b, label, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING identification_id;`},
		{&s.stmtHistory, "history", `SELECT identification_id, speaker_a, speaker_b, model_order, query_length, score_a, score_b, label, created_at FROM identifications ORDER BY identification_id DESC LIMIT ?;`},
		{&s.stmtCountSpeakers, "count speakers", `SELECT COUNT(*) FROM speakers;`},
		{&s.stmtCountHistoryByLabel, "count history", `SELECT label, COUNT(*) FROM identifications GROUP BY label;`},
	}

	for _, st := range stmts {
		stmt, err := db.Prepare(st.query)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to prepare %s statement: %w", st.name, err)
		}
		*st.dst = stmt
	}

	return s, nil
}

// Close releases all prepared statements held by the Store. The database itself
// is left open.
func (s *Store) Close() {
	for _, stmt := range []*sql.Stmt{
		s.stmtPutSpeaker,
		s.stmtGetSpeaker,
		s.stmtListSpeakers,
		s.stmtInsertHistory,
		s.stmtHistory,
		s.stmtCountSpeakers,
		s.stmtCountHistoryByLabel,
	} {
		if stmt != nil {
			_ = stmt.Close()
		}
	}
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}
