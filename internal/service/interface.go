package service

import "context"

// ModelClient is an interface for communicating with the hosted inference
// API.
type ModelClient interface {
	// Summarize condenses text with the given model.
	Summarize(ctx context.Context, model, text string) (string, error)
	// Sentiment classifies text with the given model, returning the
	// highest-confidence label and its score.
	Sentiment(ctx context.Context, model, text string) (string, float64, error)
}
