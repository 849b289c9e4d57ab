// Package models defines the wire and domain models shared by the API
// server, the MCP tool surface and the workbench client.
package models

import (
	"strings"
	"time"
)

// MethodDescriptor identifies one analysis capability exposed by the API.
type MethodDescriptor struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Model       string `json:"model" yaml:"model"`
	Endpoint    string `json:"endpoint" yaml:"endpoint"`
}

// ModelShortName returns the last path segment of the model identifier,
// which is what the UI displays ("facebook/bart-large-cnn" → "bart-large-cnn").
func (m MethodDescriptor) ModelShortName() string {
	if i := strings.LastIndex(m.Model, "/"); i >= 0 {
		return m.Model[i+1:]
	}
	return m.Model
}

// MethodsResponse is the envelope returned by GET /api/methods.
type MethodsResponse struct {
	Methods []MethodDescriptor `json:"methods"`
}

// TextInput is the request body accepted by every analysis endpoint.
type TextInput struct {
	Text string `json:"text"`
}

// SummaryResult is the response shape of the summarize method.
type SummaryResult struct {
	Result string `json:"result"`
}

// SentimentResult is the response shape of the sentiment method. Score is a
// confidence in [0,1].
type SentimentResult struct {
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
}

// RequestStatus records how an analysis request ended.
type RequestStatus string

const (
	RequestSucceeded RequestStatus = "succeeded"
	RequestFailed    RequestStatus = "failed"
)

// RequestRecord is one entry of the request history: every analysis attempt
// writes exactly one, whether it succeeded or not.
type RequestRecord struct {
	ID         string        `json:"id"`
	MethodID   string        `json:"method_id"`
	Model      string        `json:"model"`
	WordCount  int           `json:"word_count"`
	Truncated  bool          `json:"truncated"`
	Status     RequestStatus `json:"status"`
	Detail     string        `json:"detail,omitempty"`
	DurationMs int64         `json:"duration_ms"`
	CreatedAt  time.Time     `json:"created_at"`
}

// HistoryResponse is the envelope returned by GET /api/history.
type HistoryResponse struct {
	Requests []RequestRecord `json:"requests"`
}

// HealthStatus represents the health check response.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}

// ProblemDetails represents an RFC 7807 Problem Details response.
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}
