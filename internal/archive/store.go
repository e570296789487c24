// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists rendered report blobs in SQLite so past
// sessions can be listed, searched, and re-rendered.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/littlescienceai/littlesci/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "reports.db"
)

const defaultMaxResults = 20

// Record is one archived report.
type Record struct {
	ID        int64     `json:"id" yaml:"id"`
	Topic     string    `json:"topic" yaml:"topic"`
	Blob      string    `json:"blob,omitempty" yaml:"blob,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Store manages the report archive SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int

	// now is the insertion clock, overridable in tests.
	now func() time.Time
}

// NewStore opens or creates the archive database at dir/index/reports.db
// and creates the schema if it does not exist.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "archive"
	}
	dbDir := filepath.Join(dir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			topic TEXT NOT NULL,
			blob TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='reports_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE reports_fts USING fts5(topic, blob, content=reports, content_rowid=id)`,
			`CREATE TRIGGER reports_ai AFTER INSERT ON reports BEGIN
				INSERT INTO reports_fts(rowid, topic, blob) VALUES (new.id, new.topic, new.blob);
			END`,
			`CREATE TRIGGER reports_ad AFTER DELETE ON reports BEGIN
				INSERT INTO reports_fts(reports_fts, rowid, topic, blob) VALUES('delete', old.id, old.topic, old.blob);
			END`,
			`CREATE TRIGGER reports_au AFTER UPDATE ON reports BEGIN
				INSERT INTO reports_fts(reports_fts, rowid, topic, blob) VALUES('delete', old.id, old.topic, old.blob);
				INSERT INTO reports_fts(rowid, topic, blob) VALUES (new.id, new.topic, new.blob);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Save stores one rendered report blob and returns its archive ID.
func (s *Store) Save(ctx context.Context, topic, blob string) (int64, error) {
	if topic == "" {
		topic = types.DefaultTopic
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO reports (topic, blob, created_at) VALUES (?, ?, ?)`,
		topic, blob, s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading insert id: %w", err)
	}
	return id, nil
}

// Get returns one archived report by ID, blob included.
func (s *Store) Get(ctx context.Context, id int64) (Record, error) {
	var (
		rec     Record
		created string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, topic, blob, created_at FROM reports WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.Topic, &rec.Blob, &created)
	if err != nil {
		if err == sql.ErrNoRows {
			return Record{}, fmt.Errorf("report %d not found", id)
		}
		return Record{}, fmt.Errorf("looking up report: %w", err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return rec, nil
}

// List returns the most recent reports, newest first, without blobs.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, created_at FROM reports ORDER BY id DESC LIMIT ?`,
		s.maxResults,
	)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows, false)
}

// Search runs an FTS5 full-text query over topics and blobs, ranked by
// relevance, without blobs.
func (s *Store) Search(ctx context.Context, query string) ([]Record, error) {
	if query == "" {
		return s.List(ctx)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.topic, r.created_at
		FROM reports_fts
		JOIN reports r ON r.id = reports_fts.rowid
		WHERE reports_fts MATCH ?
		ORDER BY reports_fts.rank
		LIMIT ?`,
		query, s.maxResults,
	)
	if err != nil {
		return nil, fmt.Errorf("searching reports: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows, false)
}

func scanRecords(rows *sql.Rows, withBlob bool) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var (
			rec     Record
			created string
		)
		if withBlob {
			if err := rows.Scan(&rec.ID, &rec.Topic, &rec.Blob, &created); err != nil {
				return nil, fmt.Errorf("scanning row: %w", err)
			}
		} else {
			if err := rows.Scan(&rec.ID, &rec.Topic, &created); err != nil {
				return nil, fmt.Errorf("scanning row: %w", err)
			}
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		records = append(records, rec)
	}
	return records, rows.Err()
}
