// Package history persists one record per analysis request so past
// submissions can be listed later. Two backends are provided: SQLite for
// zero-setup local runs and PostgreSQL for shared deployments.
package history

import (
	"context"

	"github.com/CalleFreme/ai-methods-explorer/pkg/models"
)

// DefaultLimit bounds Recent queries when the caller asks for zero or a
// negative count.
const DefaultLimit = 20

// MaxLimit bounds Recent queries from above.
const MaxLimit = 200

// Store is an interface for recording and listing analysis requests.
type Store interface {
	// Save appends one request record.
	Save(ctx context.Context, record *models.RequestRecord) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]models.RequestRecord, error)
	// Close releases the underlying database handle.
	Close() error
}

// clampLimit normalizes a caller-supplied limit into [1, MaxLimit].
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
