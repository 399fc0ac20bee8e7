// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history persists answered queries to a local SQLite database so
// past research can be reviewed after the session ends.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrClosed        = errors.New("history store is closed")
	ErrDatabaseError = errors.New("database error")
)

// =============================================================================
// ENTRY TYPE
// =============================================================================

// Entry is one answered query.
type Entry struct {
	ID             int64
	QueryID        string
	ConversationID string
	Query          string
	Answer         string
	Confidence     *float64
	Verified       bool
	RequiresLawyer bool
	Jurisdiction   string
	CitationCount  int
	CreatedAt      time.Time
}

// =============================================================================
// STORE
// =============================================================================

// Store is the query history database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default history database location under the
// user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".lexquery", "history.db"), nil
}

// Open opens (or creates) the history database at the given path.
func Open(path string) (*Store, error) {
	// Create database directory if needed
	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(InitMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize metadata: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the store and releases resources.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// =============================================================================
// WRITE OPERATIONS
// =============================================================================

// Record inserts one answered query. A zero CreatedAt is filled with the
// current time. The entry's ID is set on success.
func (s *Store) Record(ctx context.Context, entry *Entry) error {
	if s.db == nil {
		return ErrClosed
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	var confidence sql.NullFloat64
	if entry.Confidence != nil {
		confidence = sql.NullFloat64{Float64: *entry.Confidence, Valid: true}
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO queries (
			query_id, conversation_id, query, answer, confidence,
			verified, requires_lawyer, jurisdiction, citation_count, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.QueryID, entry.ConversationID, entry.Query, entry.Answer, confidence,
		entry.Verified, entry.RequiresLawyer, entry.Jurisdiction, entry.CitationCount,
		entry.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	entry.ID = id
	return nil
}

// Prune deletes entries older than the cutoff and returns how many were
// removed.
func (s *Store) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM queries WHERE created_at < ?", olderThan.Unix())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return n, nil
}

// Clear deletes all entries.
func (s *Store) Clear(ctx context.Context) error {
	if s.db == nil {
		return ErrClosed
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM queries"); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// =============================================================================
// READ OPERATIONS
// =============================================================================

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query_id, conversation_id, query, answer, confidence,
		       verified, requires_lawyer, jurisdiction, citation_count, created_at
		FROM queries
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Search returns entries whose query or answer contains the term, newest
// first.
func (s *Store) Search(ctx context.Context, term string, limit int) ([]Entry, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 20
	}

	pattern := "%" + term + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query_id, conversation_id, query, answer, confidence,
		       verified, requires_lawyer, jurisdiction, citation_count, created_at
		FROM queries
		WHERE query LIKE ? OR answer LIKE ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM queries").Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return n, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var confidence sql.NullFloat64
		var createdAt int64
		if err := rows.Scan(
			&e.ID, &e.QueryID, &e.ConversationID, &e.Query, &e.Answer, &confidence,
			&e.Verified, &e.RequiresLawyer, &e.Jurisdiction, &e.CitationCount, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		if confidence.Valid {
			v := confidence.Float64
			e.Confidence = &v
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return entries, nil
}
