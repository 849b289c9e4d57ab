// Package service contains the analysis service: the word-ceiling and
// dispatch logic between the HTTP/MCP surfaces and the inference client,
// plus per-request history recording.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/CalleFreme/ai-methods-explorer/internal/catalog"
	"github.com/CalleFreme/ai-methods-explorer/internal/history"
	"github.com/CalleFreme/ai-methods-explorer/internal/logging"
	"github.com/CalleFreme/ai-methods-explorer/internal/workbench"
	"github.com/CalleFreme/ai-methods-explorer/pkg/models"
)

// ErrUnknownMethod reports a request for a method id the catalog does not
// carry.
var ErrUnknownMethod = errors.New("unknown analysis method")

// AnalysisService runs analysis methods against the inference API and
// records one history entry per attempt.
type AnalysisService struct {
	catalog  *catalog.Catalog
	client   ModelClient
	store    history.Store
	logger   *logging.Logger
	requests metric.Int64Counter
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(cat *catalog.Catalog, client ModelClient, store history.Store, logger *logging.Logger) *AnalysisService {
	meter := otel.Meter("ai-methods-explorer/service")
	requests, _ := meter.Int64Counter("analysis.requests",
		metric.WithDescription("Analysis requests by method and status."))

	return &AnalysisService{
		catalog:  cat,
		client:   client,
		store:    store,
		logger:   logger,
		requests: requests,
	}
}

// Methods returns the catalog descriptors in order.
func (s *AnalysisService) Methods() []models.MethodDescriptor {
	return s.catalog.Methods()
}

// Summarize runs the summarization method on text.
func (s *AnalysisService) Summarize(ctx context.Context, text string) (*models.SummaryResult, error) {
	method, ok := s.catalog.ByID("summarize")
	if !ok {
		return nil, fmt.Errorf("%w: summarize", ErrUnknownMethod)
	}

	var result models.SummaryResult
	err := s.run(ctx, method, text, func(ctx context.Context, truncated string) error {
		summary, err := s.client.Summarize(ctx, method.Model, truncated)
		if err != nil {
			return err
		}
		result.Result = summary
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Sentiment runs the sentiment method on text.
func (s *AnalysisService) Sentiment(ctx context.Context, text string) (*models.SentimentResult, error) {
	method, ok := s.catalog.ByID("sentiment")
	if !ok {
		return nil, fmt.Errorf("%w: sentiment", ErrUnknownMethod)
	}

	var result models.SentimentResult
	err := s.run(ctx, method, text, func(ctx context.Context, truncated string) error {
		label, score, err := s.client.Sentiment(ctx, method.Model, truncated)
		if err != nil {
			return err
		}
		result.Sentiment = label
		result.Score = score
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// History returns the most recent request records, newest first.
func (s *AnalysisService) History(ctx context.Context, limit int) ([]models.RequestRecord, error) {
	return s.store.Recent(ctx, limit)
}

// run enforces the word ceiling, invokes the model call with the truncated
// text and records the attempt. Every attempt writes one history record;
// store failures are logged and never surfaced to the caller.
func (s *AnalysisService) run(ctx context.Context, method models.MethodDescriptor, text string, call func(context.Context, string) error) error {
	wordCount := workbench.CountWords(text)
	truncated := workbench.Truncate(text)

	start := time.Now()
	err := call(ctx, truncated)
	duration := time.Since(start)

	record := &models.RequestRecord{
		ID:         uuid.New().String(),
		MethodID:   method.ID,
		Model:      method.Model,
		WordCount:  wordCount,
		Truncated:  wordCount > workbench.WordLimit,
		Status:     models.RequestSucceeded,
		DurationMs: duration.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	status := "succeeded"
	if err != nil {
		record.Status = models.RequestFailed
		record.Detail = err.Error()
		status = "failed"
	}

	if saveErr := s.store.Save(ctx, record); saveErr != nil {
		s.logger.Error("Failed to record request history: %v", saveErr)
	}

	s.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method.ID),
		attribute.String("status", status),
	))

	return err
}
