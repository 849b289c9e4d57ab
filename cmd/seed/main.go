package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CalleFreme/ai-methods-explorer/internal/config"
	"github.com/CalleFreme/ai-methods-explorer/internal/history"
	"github.com/CalleFreme/ai-methods-explorer/internal/logging"
	"github.com/CalleFreme/ai-methods-explorer/pkg/models"
)

func main() {
	ctx := context.Background()
	logger := logging.NewLogger()

	configFile := flag.String("config", "", "Path to config file")
	flag.Parse()

	// Load config
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Open the configured history store; for Postgres this also ensures the
	// schema exists.
	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open history store: %v", err)
	}
	defer store.Close()

	// Check for existing records to prevent duplicate seeding
	existing, err := store.Recent(ctx, 1)
	if err != nil {
		log.Fatalf("Failed to check existing history: %v", err)
	}
	if len(existing) > 0 {
		logger.Info("History already has records, skipping seed")
		return
	}

	now := time.Now().UTC()
	records := []models.RequestRecord{
		{
			MethodID:   "summarize",
			Model:      "facebook/bart-large-cnn",
			WordCount:  387,
			Truncated:  false,
			Status:     models.RequestSucceeded,
			DurationMs: 2140,
			CreatedAt:  now.Add(-3 * time.Hour),
		},
		{
			MethodID:   "sentiment",
			Model:      "distilbert-base-uncased-finetuned-sst-2-english",
			WordCount:  42,
			Truncated:  false,
			Status:     models.RequestSucceeded,
			DurationMs: 310,
			CreatedAt:  now.Add(-2 * time.Hour),
		},
		{
			MethodID:   "summarize",
			Model:      "facebook/bart-large-cnn",
			WordCount:  845,
			Truncated:  true,
			Status:     models.RequestSucceeded,
			DurationMs: 3020,
			CreatedAt:  now.Add(-45 * time.Minute),
		},
		{
			MethodID:   "sentiment",
			Model:      "distilbert-base-uncased-finetuned-sst-2-english",
			WordCount:  18,
			Truncated:  false,
			Status:     models.RequestFailed,
			Detail:     "API request failed: status code 503: model is loading",
			DurationMs: 12050,
			CreatedAt:  now.Add(-10 * time.Minute),
		},
	}

	for i := range records {
		records[i].ID = uuid.New().String()
		if err := store.Save(ctx, &records[i]); err != nil {
			log.Printf("Failed to seed record %s: %v", records[i].MethodID, err)
		} else {
			logger.Info("Seeded %s request from %s", records[i].MethodID, records[i].CreatedAt.Format(time.RFC3339))
		}
	}
	logger.Info("Seeding complete!")
}

func openStore(ctx context.Context, cfg *config.Config) (history.Store, error) {
	switch cfg.History.Driver {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.HistoryConnString())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to DB: %w", err)
		}
		store := history.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil
	case "sqlite", "":
		return history.NewSQLiteStore(cfg.History.Path)
	default:
		return nil, fmt.Errorf("unknown history driver %q", cfg.History.Driver)
	}
}
