package workbench

import (
	"encoding/json"

	"github.com/CalleFreme/ai-methods-explorer/pkg/models"
)

// ResultKind tags the variants of the result union.
type ResultKind string

const (
	// ResultSummary is the summarization shape: {"result": string}.
	ResultSummary ResultKind = "summary"
	// ResultSentiment is the sentiment shape: {"sentiment": string, "score": number}.
	ResultSentiment ResultKind = "sentiment"
	// ResultRaw is the fallback for every other payload.
	ResultRaw ResultKind = "raw"
)

// Result is the decoded response of one analysis request. Exactly one
// variant field matching Kind is set; Raw always holds the original bytes so
// unknown shapes stay visible instead of being dropped.
type Result struct {
	Kind      ResultKind
	Summary   *models.SummaryResult
	Sentiment *models.SentimentResult
	Raw       json.RawMessage
}

// DecodeResult discriminates a response body structurally, by the presence
// of the expected fields rather than by the method that was called, so a
// malformed payload degrades to the raw variant instead of failing.
func DecodeResult(body []byte) Result {
	result := Result{Kind: ResultRaw, Raw: append(json.RawMessage(nil), body...)}

	var summary struct {
		Result *string `json:"result"`
	}
	if err := json.Unmarshal(body, &summary); err == nil && summary.Result != nil {
		result.Kind = ResultSummary
		result.Summary = &models.SummaryResult{Result: *summary.Result}
		return result
	}

	var sentiment struct {
		Sentiment *string  `json:"sentiment"`
		Score     *float64 `json:"score"`
	}
	if err := json.Unmarshal(body, &sentiment); err == nil && sentiment.Sentiment != nil && sentiment.Score != nil {
		result.Kind = ResultSentiment
		result.Sentiment = &models.SentimentResult{
			Sentiment: *sentiment.Sentiment,
			Score:     *sentiment.Score,
		}
		return result
	}

	return result
}
