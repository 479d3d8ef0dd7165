package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/sl4desec/subpeek/internal/models"
	_ "modernc.org/sqlite"
)

const subdomainsSchema = `
CREATE TABLE subdomains (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	domain TEXT NOT NULL,
	subdomain TEXT NOT NULL UNIQUE,
	ip TEXT NOT NULL,
	status_code INTEGER,
	title TEXT,
	server TEXT,
	content_length INTEGER,
	scan_time DATETIME NOT NULL
);
`

// SQLiteStore writes final results into the subdomains table.
type SQLiteStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewSQLiteStore opens (creating if needed) the database at dataSourceName.
func NewSQLiteStore(dataSourceName string, logger zerolog.Logger) (*SQLiteStore, error) {
	logger = logger.With().Str("component", "SQLiteStore").Logger()

	if dbDir := filepath.Dir(dataSourceName); dbDir != "" {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
		}
	}

	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}
	db.SetMaxOpenConns(1)

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ReplaceResults drops and recreates the subdomains table, then inserts
// every fingerprint in one transaction.
func (s *SQLiteStore) ReplaceResults(ctx context.Context, domain string, fingerprints []models.Fingerprint, scanTime time.Time) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS subdomains`); err != nil {
		return 0, fmt.Errorf("failed to drop subdomains table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, subdomainsSchema); err != nil {
		return 0, fmt.Errorf("failed to create subdomains table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO subdomains (domain, subdomain, ip, status_code, title, server, content_length, scan_time) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, fp := range fingerprints {
		_, err := stmt.ExecContext(ctx,
			domain,
			fp.Subdomain,
			fp.IP,
			nullInt(fp.StatusCode),
			nullString(fp.Title),
			nullString(fp.Server),
			nullInt64(fp.ContentLength),
			scanTime.UTC(),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert %s: %w", fp.Subdomain, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit results: %w", err)
	}

	s.logger.Info().Int("rows", len(fingerprints)).Msg("Wrote results to SQLite")
	return len(fingerprints), nil
}

// LoadResults reads the subdomains table back, ordered by subdomain.
func (s *SQLiteStore) LoadResults(ctx context.Context) ([]models.Fingerprint, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT subdomain, ip, status_code, title, server, content_length FROM subdomains ORDER BY subdomain`)
	if err != nil {
		return nil, fmt.Errorf("failed to query subdomains: %w", err)
	}
	defer rows.Close()

	var results []models.Fingerprint
	for rows.Next() {
		var (
			fp            models.Fingerprint
			statusCode    sql.NullInt64
			title, server sql.NullString
			contentLength sql.NullInt64
		)
		if err := rows.Scan(&fp.Subdomain, &fp.IP, &statusCode, &title, &server, &contentLength); err != nil {
			return nil, fmt.Errorf("failed to scan subdomain row: %w", err)
		}
		if statusCode.Valid {
			fp.StatusCode = models.IntPtr(int(statusCode.Int64))
		}
		if title.Valid {
			fp.Title = models.StringPtr(title.String)
		}
		if server.Valid {
			fp.Server = models.StringPtr(server.String)
		}
		if contentLength.Valid {
			fp.ContentLength = models.Int64Ptr(contentLength.Int64)
		}
		results = append(results, fp)
	}
	return results, rows.Err()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func nullInt64(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}
