/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package hosts

import (
	"context"
	"database/sql"
	"strings"

	_ "modernc.org/sqlite"

	apperrors "github.com/NVIDIA/discovery-preflight/pkg/errors"
)

var sqliteSchema = []string{`
CREATE TABLE IF NOT EXISTS host_lines (
	position INTEGER PRIMARY KEY,
	hostname TEXT NOT NULL DEFAULT '',
	ip_address TEXT NOT NULL DEFAULT '',
	line TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS host_lines_hostname ON host_lines (hostname COLLATE NOCASE)`,
}

// SQLiteStore keeps the table in a SQLite database, one row per line.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at dsn.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "sqlite hosts store path is required")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStorageUnavailable, "failed to open sqlite hosts store", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, apperrors.Wrap(apperrors.ErrCodeStorageUnavailable, "failed to set sqlite WAL mode", err)
	}

	for _, stmt := range sqliteSchema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, apperrors.Wrap(apperrors.ErrCodeStorageUnavailable, "failed to create sqlite hosts schema", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Read implements Store.
func (s *SQLiteStore) Read(ctx context.Context) ([]Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT line FROM host_lines ORDER BY position ASC`)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStorageUnavailable, "failed to query sqlite hosts store", err)
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeStorageUnavailable, "failed to scan sqlite hosts row", err)
		}
		lines = append(lines, ParseLine(text))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStorageUnavailable, "failed to read sqlite hosts rows", err)
	}
	return lines, nil
}

// Write implements Store. All rows are replaced in one transaction.
func (s *SQLiteStore) Write(ctx context.Context, lines []Line) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStorageUnavailable, "failed to begin sqlite transaction", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM host_lines`); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStorageUnavailable, "failed to clear sqlite hosts store", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO host_lines (position, hostname, ip_address, line)
VALUES (?, ?, ?, ?)`)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStorageUnavailable, "failed to prepare sqlite insert", err)
	}
	defer stmt.Close()

	for i, l := range lines {
		if _, err := stmt.ExecContext(ctx, i, l.Hostname(), l.IPAddress, l.String()); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeStorageUnavailable, "failed to insert sqlite hosts row", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStorageUnavailable, "failed to commit sqlite transaction", err)
	}
	return nil
}
