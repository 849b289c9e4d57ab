package workbench

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// View is what the renderer produces for display. Exactly the fields for
// the rendered Kind are set.
type View struct {
	Kind ResultKind

	// Summary fields.
	Heading string
	Summary string

	// Sentiment fields.
	Label      string
	Confidence string  // score formatted as a percentage, two decimals
	BarPercent float64 // proportional bar width in [0, 100]
	Positive   bool    // case-insensitive match against "positive"

	// Raw fallback.
	Raw string
}

// Render is a pure function of the current result and the active method id.
// A nil result renders nothing. The summary and sentiment treatments apply
// only when the method id and the decoded shape both match; everything else
// falls through to pretty-printed raw output so unknown shapes stay visible.
func Render(result *Result, methodID string) *View {
	if result == nil {
		return nil
	}

	switch {
	case methodID == "summarize" && result.Kind == ResultSummary:
		return &View{
			Kind:    ResultSummary,
			Heading: "Summary",
			Summary: result.Summary.Result,
		}

	case methodID == "sentiment" && result.Kind == ResultSentiment:
		score := result.Sentiment.Score
		percent := score * 100
		if percent < 0 {
			percent = 0
		}
		if percent > 100 {
			percent = 100
		}
		return &View{
			Kind:       ResultSentiment,
			Label:      result.Sentiment.Sentiment,
			Confidence: fmt.Sprintf("%.2f%%", score*100),
			BarPercent: percent,
			Positive:   strings.EqualFold(result.Sentiment.Sentiment, "positive"),
		}

	default:
		return &View{
			Kind: ResultRaw,
			Raw:  prettyJSON(result.Raw),
		}
	}
}

// prettyJSON indents raw JSON for display; non-JSON bytes are returned
// verbatim.
func prettyJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
