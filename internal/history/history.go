// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history records past predictions in a local SQLite database so
// the user can review earlier estimates without re-running the form.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/carecost-tui/internal/api"
	"github.com/jeranaias/carecost-tui/internal/util"

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
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS predictions (
	id          TEXT PRIMARY KEY,
	created_at  INTEGER NOT NULL,
	age         INTEGER NOT NULL,
	gender      TEXT NOT NULL,
	bmi         REAL NOT NULL,
	smoker      TEXT NOT NULL,
	summary     TEXT NOT NULL,
	estimate    REAL NOT NULL,
	user_email  TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_predictions_created_at
	ON predictions(created_at DESC);
`

// =============================================================================
// ENTRY
// =============================================================================

// Entry is one recorded prediction.
type Entry struct {
	ID        string
	CreatedAt time.Time
	Age       int
	Gender    string
	BMI       float64
	Smoker    string
	Summary   string
	Estimate  float64
	UserEmail string
}

// EstimateINR returns the recorded estimate formatted for display.
func (e Entry) EstimateINR() string {
	return util.FormatINR(e.Estimate)
}

// =============================================================================
// STORE
// =============================================================================

// Store is the local prediction history database.
type Store struct {
	db         *sql.DB
	maxEntries int
}

// DefaultPath returns the default history database location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".carecost", "history.db"), nil
}

// Open opens (or creates) the history database at path. An empty path
// selects the default location. maxEntries caps retained rows; 0 keeps
// everything.
func Open(path string, maxEntries int) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
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

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, maxEntries: maxEntries}, nil
}

// Close closes the store and releases resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Record stores a completed prediction. The entry keeps only the fields
// worth showing in a history listing, not the full 19-field request.
func (s *Store) Record(ctx context.Context, req *api.PredictionRequest, resp *api.PredictionResponse) (Entry, error) {
	if s.db == nil {
		return Entry{}, ErrClosed
	}

	entry := Entry{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Age:       req.Age,
		Gender:    req.Gender,
		BMI:       req.BMI,
		Smoker:    req.Smoker,
		Summary:   summarize(req),
		Estimate:  resp.PredictionINR,
		UserEmail: req.UserEmail,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO predictions
			(id, created_at, age, gender, bmi, smoker, summary, estimate, user_email)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.CreatedAt.Unix(), entry.Age, entry.Gender, entry.BMI,
		entry.Smoker, entry.Summary, entry.Estimate, entry.UserEmail,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	if s.maxEntries > 0 {
		if err := s.prune(ctx); err != nil {
			return Entry{}, err
		}
	}

	return entry, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, age, gender, bmi, smoker, summary, estimate, user_email
		FROM predictions
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt int64
		if err := rows.Scan(&e.ID, &createdAt, &e.Age, &e.Gender, &e.BMI,
			&e.Smoker, &e.Summary, &e.Estimate, &e.UserEmail); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of recorded predictions.
func (s *Store) Count(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM predictions").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return n, nil
}

// ClearAll removes every recorded prediction.
func (s *Store) ClearAll(ctx context.Context) error {
	if s.db == nil {
		return ErrClosed
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM predictions")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// prune drops the oldest rows beyond the retention cap.
func (s *Store) prune(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM predictions WHERE id NOT IN (
			SELECT id FROM predictions
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)`, s.maxEntries)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// summarize builds the one-line description shown in history listings,
// e.g. "45y Male, BMI 28.5, smoker".
func summarize(req *api.PredictionRequest) string {
	smoking := "non-smoker"
	if req.Smoker == "Yes" {
		smoking = "smoker"
	}
	return fmt.Sprintf("%dy %s, BMI %.1f, %s", req.Age, req.Gender, req.BMI, smoking)
}
