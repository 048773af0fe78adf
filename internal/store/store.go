// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists parsed recommendations in SQLite so audits can be
// searched and exported across benchmark documents without re-reading PDFs.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/cisconv/pkg/types"
)

// ErrNotFound is returned when a requested document is not in the store.
var ErrNotFound = errors.New("not found")

// defaultMaxResults caps Search when QueryOptions.MaxResults is zero.
const defaultMaxResults = 50

// Store wraps the audit database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			title TEXT,
			version TEXT,
			source_path TEXT,
			selector TEXT,
			parsed_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS recommendations (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			document_id TEXT NOT NULL REFERENCES documents(id),
			position INTEGER NOT NULL,
			number TEXT NOT NULL,
			title TEXT NOT NULL,
			level TEXT,
			assessment TEXT,
			category TEXT NOT NULL,
			ordinal INTEGER NOT NULL,
			sections TEXT,
			content TEXT,
			UNIQUE (document_id, number, title)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recommendations_document ON recommendations(document_id)`,
		`CREATE INDEX IF NOT EXISTS idx_recommendations_category ON recommendations(category)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save records doc and replaces its recommendations with those in groups,
// in a single transaction. It returns the number of recommendations stored.
func (s *Store) Save(ctx context.Context, doc types.Document, groups []types.Group) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recommendations WHERE document_id = ?`, doc.ID); err != nil {
		return 0, fmt.Errorf("deleting old recommendations: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, title, version, source_path, selector, parsed_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, version=excluded.version, source_path=excluded.source_path,
			selector=excluded.selector, parsed_at=excluded.parsed_at`,
		doc.ID, doc.Title, doc.Version, doc.SourcePath, doc.Selector,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("upserting document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO recommendations
			(document_id, position, number, title, level, assessment, category, ordinal, sections, content)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, g := range groups {
		for _, r := range g.Recommendations {
			sections, err := json.Marshal(r.Sections)
			if err != nil {
				return 0, fmt.Errorf("encoding sections of %s: %w", r.Number, err)
			}
			if _, err := stmt.ExecContext(ctx,
				doc.ID, n, r.Number, r.Title, r.Level, string(r.Assessment),
				g.Category, g.Ordinal, string(sections), content(r),
			); err != nil {
				return 0, fmt.Errorf("inserting recommendation %s: %w", r.Number, err)
			}
			n++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return n, nil
}

// content flattens the section texts into one searchable string.
func content(r types.Recommendation) string {
	parts := make([]string, 0, len(r.Sections))
	for _, sec := range types.Sections {
		if v := r.Section(sec); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "\n")
}

// Document returns the stored metadata for id.
func (s *Store) Document(ctx context.Context, id string) (types.Document, error) {
	var (
		doc                              types.Document
		title, version, source, selector sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, version, source_path, selector FROM documents WHERE id = ?`, id,
	).Scan(&doc.ID, &title, &version, &source, &selector)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Document{}, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return types.Document{}, fmt.Errorf("querying document %s: %w", id, err)
	}
	doc.Title = title.String
	doc.Version = version.String
	doc.SourcePath = source.String
	doc.Selector = selector.String
	return doc, nil
}

// Documents lists every stored document ordered by id.
func (s *Store) Documents(ctx context.Context) ([]types.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, IFNULL(title, ''), IFNULL(version, ''), IFNULL(source_path, ''), IFNULL(selector, '')
		 FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []types.Document
	for rows.Next() {
		var d types.Document
		if err := rows.Scan(&d.ID, &d.Title, &d.Version, &d.SourcePath, &d.Selector); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
