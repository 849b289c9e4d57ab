package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CalleFreme/ai-methods-explorer/pkg/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteSaveAndRecent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		record := &models.RequestRecord{
			ID:         uuid.New().String(),
			MethodID:   "summarize",
			Model:      "facebook/bart-large-cnn",
			WordCount:  100 + i,
			Truncated:  false,
			Status:     models.RequestSucceeded,
			Detail:     "",
			DurationMs: 42,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.Save(ctx, record))
	}

	records, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Newest first.
	assert.Equal(t, 102, records[0].WordCount)
	assert.Equal(t, 101, records[1].WordCount)
	assert.Equal(t, 100, records[2].WordCount)
	assert.Equal(t, models.RequestSucceeded, records[0].Status)
	assert.True(t, records[0].CreatedAt.Equal(base.Add(2*time.Minute)))
}

func TestSQLiteRecentLimit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Save(ctx, &models.RequestRecord{
			ID:        uuid.New().String(),
			MethodID:  "sentiment",
			Model:     "distilbert-base-uncased-finetuned-sst-2-english",
			Status:    models.RequestFailed,
			Detail:    "API request failed",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	records, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	// Zero falls back to the default limit.
	records, err = store.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestSQLiteRecentEmpty(t *testing.T) {
	store := newTestStore(t)

	records, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestSQLiteFailureDetail(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Save(ctx, &models.RequestRecord{
		ID:        uuid.New().String(),
		MethodID:  "summarize",
		Model:     "facebook/bart-large-cnn",
		Status:    models.RequestFailed,
		Detail:    "payload too large",
		CreatedAt: time.Now().UTC(),
	}))

	records, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.RequestFailed, records[0].Status)
	assert.Equal(t, "payload too large", records[0].Detail)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, clampLimit(0))
	assert.Equal(t, DefaultLimit, clampLimit(-3))
	assert.Equal(t, 7, clampLimit(7))
	assert.Equal(t, MaxLimit, clampLimit(10000))
}
