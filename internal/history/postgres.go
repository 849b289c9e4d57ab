package history

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CalleFreme/ai-methods-explorer/pkg/models"
)

// postgresSchema creates the requests table. Applied on startup and by the
// seed command; CREATE IF NOT EXISTS keeps it safe to run repeatedly.
const postgresSchema = `CREATE TABLE IF NOT EXISTS requests (
	id UUID PRIMARY KEY,
	method_id TEXT NOT NULL,
	model TEXT NOT NULL,
	word_count INT NOT NULL,
	truncated BOOLEAN NOT NULL,
	status TEXT NOT NULL,
	detail TEXT,
	duration_ms BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_requests_created_at ON requests(created_at);`

// PostgresStore is a PostgreSQL implementation of the Store interface.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore on an existing pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the requests table if it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, postgresSchema)
	return err
}

// Save appends one request record.
func (s *PostgresStore) Save(ctx context.Context, record *models.RequestRecord) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO requests (id, method_id, model, word_count, truncated, status, detail, duration_ms, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		record.ID, record.MethodID, record.Model, record.WordCount, record.Truncated,
		string(record.Status), record.Detail, record.DurationMs, record.CreatedAt)
	return err
}

// Recent returns up to limit records, newest first.
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]models.RequestRecord, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, method_id, model, word_count, truncated, status, detail, duration_ms, created_at
		 FROM requests ORDER BY created_at DESC LIMIT $1`,
		clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.RequestRecord{}
	for rows.Next() {
		var record models.RequestRecord
		var status string
		var detail *string
		if err := rows.Scan(&record.ID, &record.MethodID, &record.Model, &record.WordCount,
			&record.Truncated, &status, &detail, &record.DurationMs, &record.CreatedAt); err != nil {
			return nil, err
		}
		record.Status = models.RequestStatus(status)
		if detail != nil {
			record.Detail = *detail
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
