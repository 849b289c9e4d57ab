// Package inference is the HTTP client for the hosted model service. Each
// analysis method maps to one hosted model; requests follow the provider's
// "inputs" convention.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

// ErrPayloadTooLarge reports that the model service rejected the request body
// as oversized. Callers surface this case to users distinctly from other
// failures.
var ErrPayloadTooLarge = errors.New("inference: payload too large")

// summaryMaxLength caps the length of generated summaries, matching the
// parameters the service has always sent to the summarization model.
const summaryMaxLength = 100

// Client is an HTTP client for the inference API.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewClient creates a new Client. The base URL points at the inference API
// root (models are addressed as {base}/models/{model}); apiKey may be empty
// for anonymous access.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   http.DefaultClient,
	}
}

type summarizeRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters summarizeParameters `json:"parameters"`
}

type summarizeParameters struct {
	MaxLength int `json:"max_length"`
}

type summaryEntry struct {
	SummaryText string `json:"summary_text"`
}

type sentimentRequest struct {
	Inputs string `json:"inputs"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Summarize condenses text with the given summarization model and returns
// the generated summary.
func (c *Client) Summarize(ctx context.Context, model, text string) (string, error) {
	body, err := c.post(ctx, model, summarizeRequest{
		Inputs:     text,
		Parameters: summarizeParameters{MaxLength: summaryMaxLength},
	})
	if err != nil {
		return "", err
	}

	var entries []summaryEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return "", fmt.Errorf("invalid response format from API: %w", err)
	}
	if len(entries) == 0 {
		return "", errors.New("invalid response format from API: empty result list")
	}
	return entries[0].SummaryText, nil
}

// Sentiment classifies text with the given sentiment model and returns the
// highest-confidence label together with its score.
func (c *Client) Sentiment(ctx context.Context, model, text string) (string, float64, error) {
	body, err := c.post(ctx, model, sentimentRequest{Inputs: text})
	if err != nil {
		return "", 0, err
	}

	// The provider wraps per-input label lists in an outer array; some
	// models answer with the flat list directly. Accept both.
	var nested [][]labelScore
	candidates := []labelScore{}
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 {
		candidates = nested[0]
	} else {
		var flat []labelScore
		if err := json.Unmarshal(body, &flat); err != nil {
			return "", 0, fmt.Errorf("invalid response format from API: %w", err)
		}
		candidates = flat
	}
	if len(candidates) == 0 {
		return "", 0, errors.New("no sentiment data returned from API")
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	top := candidates[0]
	return top.Label, top.Score, nil
}

// post sends one JSON request to the model endpoint and returns the raw
// response body.
func (c *Client) post(ctx context.Context, model string, payload interface{}) ([]byte, error) {
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/models/"+model, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusRequestEntityTooLarge {
		return nil, ErrPayloadTooLarge
	}
	if resp.StatusCode != http.StatusOK {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("API request failed: status code %d: %s",
			resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
