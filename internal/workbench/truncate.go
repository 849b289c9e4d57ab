// Package workbench implements the text-submission workflow: loading the
// method catalog, resolving one method, enforcing the word ceiling on input,
// submitting text to the method's endpoint and decoding and rendering the
// result. It is the client-side counterpart of the server's analysis API and
// is what cmd/explorer drives.
package workbench

import (
	"regexp"
	"strings"
)

// WordLimit is the ceiling on words sent to any analysis method.
const WordLimit = 512

// TruncationMarker is inserted into the display copy of over-limit input,
// right after the last word that will be submitted. It is display-only and
// is stripped whenever edited text is re-ingested.
const TruncationMarker = "[~~ 512 WORD LIMIT ~~]"

var whitespaceRun = regexp.MustCompile(`\s+`)

// splitWords splits text on runs of whitespace after trimming. An empty
// string yields one empty "word"; CountWords reports 1 for it. Known quirk,
// kept deliberately: callers treat the zero-word boundary as one word.
func splitWords(text string) []string {
	return whitespaceRun.Split(strings.TrimSpace(text), -1)
}

// CountWords returns the number of whitespace-delimited words in text.
func CountWords(text string) int {
	return len(splitWords(text))
}

// Overflow returns how many words text carries beyond WordLimit, zero if it
// fits.
func Overflow(text string) int {
	if n := CountWords(text) - WordLimit; n > 0 {
		return n
	}
	return 0
}

// Truncate returns the first WordLimit words of text joined by single
// spaces. This is the only form ever submitted to a method endpoint.
// Truncating an already-truncated text is a no-op.
func Truncate(text string) string {
	words := splitWords(text)
	if len(words) > WordLimit {
		words = words[:WordLimit]
	}
	return strings.Join(words, " ")
}

// Annotate returns a display copy of text with the TruncationMarker inserted
// between the last in-limit word and the first overflow word. Text within
// the limit is returned unchanged.
func Annotate(text string) string {
	words := splitWords(text)
	if len(words) <= WordLimit {
		return text
	}
	kept := strings.Join(words[:WordLimit], " ")
	rest := strings.Join(words[WordLimit:], " ")
	return kept + " " + TruncationMarker + " " + rest
}

// StripMarker removes the TruncationMarker from re-ingested text so the
// marker itself is never treated as content.
func StripMarker(text string) string {
	return strings.ReplaceAll(text, TruncationMarker, "")
}
