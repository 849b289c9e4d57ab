package workbench

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/CalleFreme/ai-methods-explorer/pkg/models"
)

// SessionState is one of the workflow states.
type SessionState string

const (
	StateIdle       SessionState = "idle"
	StateSubmitting SessionState = "submitting"
	StateSuccess    SessionState = "success"
	StateFailure    SessionState = "failure"
)

// ErrSessionClosed reports a Submit on a closed session. Responses that
// resolve after Close are discarded with this error instead of mutating the
// dead session's state.
var ErrSessionClosed = errors.New("session closed")

// OversizedMessage is shown when the endpoint rejects the payload as too
// large.
const OversizedMessage = "Text is too long. Please use a shorter text (maximum 512 words)."

// Session runs the submission workflow for one resolved method. Each tool
// view owns exactly one Session; input, result and error state are never
// shared across instances. A Session moves idle -> submitting -> success or
// failure and is then ready to submit again.
type Session struct {
	method  models.MethodDescriptor
	baseURL string
	httpc   *http.Client

	mu        sync.Mutex
	state     SessionState
	input     string
	result    *Result
	errMsg    string
	overLimit bool
	closed    bool
}

// NewSession creates a Session for a resolved method descriptor. A nil
// client falls back to http.DefaultClient.
func NewSession(method models.MethodDescriptor, baseURL string, httpc *http.Client) *Session {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Session{
		method:  method,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   httpc,
		state:   StateIdle,
	}
}

// SetInput replaces the stored input. Any truncation marker present in the
// text is stripped first so a marker rendered into the input surface never
// becomes content.
func (s *Session) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = StripMarker(text)
}

// Input returns the stored input text.
func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// State returns the current workflow state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the last successful result, nil before the first success.
// Failures never clear it; only a fresh success replaces it.
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Err returns the current user-readable error message, empty when none.
func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// OverLimit reports whether the input exceeded WordLimit at the moment of
// the last submission.
func (s *Session) OverLimit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overLimit
}

// Close marks the session dead. In-flight responses are discarded instead
// of updating state that no view observes any more.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Submit runs one submission. It is a no-op while a submission is already
// in flight, when the trimmed input is empty, or when the session has no
// resolved method. Only the truncated copy of the input is sent. On failure
// the previous result is left in place and Err carries the message: the
// dedicated oversized-input message when the endpoint rejected the payload
// as too large, a generic message naming the method otherwise.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return nil
	}
	if strings.TrimSpace(s.input) == "" || s.method.Endpoint == "" {
		s.mu.Unlock()
		return nil
	}

	s.state = StateSubmitting
	s.errMsg = ""
	s.overLimit = Overflow(s.input) > 0
	truncated := Truncate(s.input)
	s.mu.Unlock()

	result, err := s.post(ctx, truncated)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}

	if err != nil {
		s.state = StateFailure
		if errors.Is(err, errPayloadTooLarge) {
			s.errMsg = OversizedMessage
		} else {
			s.errMsg = fmt.Sprintf("Failed to process text with %s. Please try again.", s.method.Name)
		}
		return errors.New(s.errMsg)
	}

	s.state = StateSuccess
	s.result = result
	s.errMsg = ""
	return nil
}

// errPayloadTooLarge distinguishes the oversized-payload failure inside the
// session.
var errPayloadTooLarge = errors.New("payload too large")

// post issues the one request of a submission and decodes the result union.
func (s *Session) post(ctx context.Context, text string) (*Result, error) {
	body, err := json.Marshal(models.TextInput{Text: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+s.method.Endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusRequestEntityTooLarge {
		return nil, errPayloadTooLarge
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status code %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	result := DecodeResult(raw)
	return &result, nil
}
