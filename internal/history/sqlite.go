package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/CalleFreme/ai-methods-explorer/pkg/models"
)

// SQLiteStore is a SQLite implementation of the Store interface.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) the database file at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database tables: %w", err)
	}

	return store, nil
}

// initTables initializes database tables.
func (s *SQLiteStore) initTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS requests (
			id TEXT PRIMARY KEY,
			method_id TEXT NOT NULL,
			model TEXT NOT NULL,
			word_count INTEGER NOT NULL,
			truncated INTEGER NOT NULL,
			status TEXT NOT NULL,
			detail TEXT,
			duration_ms INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_requests_created_at ON requests(created_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute SQL: %s, error: %w", query, err)
		}
	}

	return nil
}

// Save appends one request record.
func (s *SQLiteStore) Save(ctx context.Context, record *models.RequestRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO requests (id, method_id, model, word_count, truncated, status, detail, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.MethodID, record.Model, record.WordCount, record.Truncated,
		string(record.Status), record.Detail, record.DurationMs, record.CreatedAt)
	return err
}

// Recent returns up to limit records, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]models.RequestRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, method_id, model, word_count, truncated, status, detail, duration_ms, created_at
		 FROM requests ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.RequestRecord{}
	for rows.Next() {
		var record models.RequestRecord
		var status string
		var detail sql.NullString
		if err := rows.Scan(&record.ID, &record.MethodID, &record.Model, &record.WordCount,
			&record.Truncated, &status, &detail, &record.DurationMs, &record.CreatedAt); err != nil {
			return nil, err
		}
		record.Status = models.RequestStatus(status)
		record.Detail = detail.String
		records = append(records, record)
	}

	return records, rows.Err()
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
