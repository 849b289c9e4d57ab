package workbench

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CalleFreme/ai-methods-explorer/pkg/models"
)

var summarizeMethod = models.MethodDescriptor{
	ID:       "summarize",
	Name:     "Text Summarization",
	Model:    "facebook/bart-large-cnn",
	Endpoint: "/api/summarize",
}

func TestSubmitSuccess(t *testing.T) {
	var gotInput models.TextInput
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/summarize", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotInput))
		_, _ = w.Write([]byte(`{"result": "A short summary."}`))
	}))
	defer server.Close()

	session := NewSession(summarizeMethod, server.URL, nil)
	session.SetInput("Some text worth summarizing.")

	require.NoError(t, session.Submit(context.Background()))

	assert.Equal(t, StateSuccess, session.State())
	assert.Empty(t, session.Err())
	assert.False(t, session.OverLimit())
	assert.Equal(t, "Some text worth summarizing.", gotInput.Text)

	result := session.Result()
	require.NotNil(t, result)
	assert.Equal(t, ResultSummary, result.Kind)
	assert.Equal(t, "A short summary.", result.Summary.Result)
}

func TestSubmitGuards(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	t.Run("empty input is a no-op", func(t *testing.T) {
		session := NewSession(summarizeMethod, server.URL, nil)
		session.SetInput("   \n\t ")

		require.NoError(t, session.Submit(context.Background()))

		assert.Equal(t, StateIdle, session.State())
		assert.Equal(t, int32(0), requests.Load())
	})

	t.Run("unresolved method is a no-op", func(t *testing.T) {
		session := NewSession(models.MethodDescriptor{}, server.URL, nil)
		session.SetInput("some text")

		require.NoError(t, session.Submit(context.Background()))

		assert.Equal(t, StateIdle, session.State())
		assert.Equal(t, int32(0), requests.Load())
	})
}

func TestSubmitTruncatesOverLimitInput(t *testing.T) {
	var gotInput models.TextInput
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotInput))
		_, _ = w.Write([]byte(`{"result": "ok"}`))
	}))
	defer server.Close()

	session := NewSession(summarizeMethod, server.URL, nil)
	session.SetInput(nWords(WordLimit + 25))

	require.NoError(t, session.Submit(context.Background()))

	assert.True(t, session.OverLimit())
	sent := strings.Split(gotInput.Text, " ")
	assert.Len(t, sent, WordLimit)
	assert.NotContains(t, gotInput.Text, TruncationMarker)
}

func TestSubmitOversizedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too large", http.StatusRequestEntityTooLarge)
	}))
	defer server.Close()

	session := NewSession(summarizeMethod, server.URL, nil)
	session.SetInput("some text")

	err := session.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, StateFailure, session.State())
	assert.Equal(t, OversizedMessage, session.Err())
}

func TestSubmitGenericFailureNamesMethod(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	session := NewSession(summarizeMethod, server.URL, nil)
	session.SetInput("some text")

	err := session.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, StateFailure, session.State())
	assert.Contains(t, session.Err(), "Text Summarization")
	assert.Contains(t, session.Err(), "try again")
}

func TestFailurePreservesPriorResult(t *testing.T) {
	var fail atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"result": "first answer"}`))
	}))
	defer server.Close()

	session := NewSession(summarizeMethod, server.URL, nil)
	session.SetInput("some text")
	require.NoError(t, session.Submit(context.Background()))
	require.NotNil(t, session.Result())

	fail.Store(true)
	require.Error(t, session.Submit(context.Background()))

	assert.Equal(t, StateFailure, session.State())
	require.NotNil(t, session.Result())
	assert.Equal(t, "first answer", session.Result().Summary.Result)
}

func TestSubmitNotReentrant(t *testing.T) {
	var requests atomic.Int32
	arrived := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		arrived <- struct{}{}
		<-release
		_, _ = w.Write([]byte(`{"result": "done"}`))
	}))
	defer server.Close()

	session := NewSession(summarizeMethod, server.URL, nil)
	session.SetInput("some text")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = session.Submit(context.Background())
	}()

	<-arrived
	assert.Equal(t, StateSubmitting, session.State())

	// Second trigger while in flight: no second request.
	require.NoError(t, session.Submit(context.Background()))
	assert.Equal(t, int32(1), requests.Load())

	close(release)
	wg.Wait()

	assert.Equal(t, StateSuccess, session.State())
	assert.Equal(t, int32(1), requests.Load())
}

func TestCloseDiscardsInFlightResponse(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrived <- struct{}{}
		<-release
		_, _ = w.Write([]byte(`{"result": "late answer"}`))
	}))
	defer server.Close()

	session := NewSession(summarizeMethod, server.URL, nil)
	session.SetInput("some text")

	done := make(chan error, 1)
	go func() { done <- session.Submit(context.Background()) }()

	<-arrived
	session.Close()
	close(release)

	err := <-done
	assert.True(t, errors.Is(err, ErrSessionClosed))
	assert.Nil(t, session.Result())
	assert.Empty(t, session.Err())
}

func TestSubmitAfterClose(t *testing.T) {
	session := NewSession(summarizeMethod, "http://localhost:0", nil)
	session.SetInput("some text")
	session.Close()

	err := session.Submit(context.Background())

	assert.True(t, errors.Is(err, ErrSessionClosed))
}

func TestSetInputStripsMarker(t *testing.T) {
	session := NewSession(summarizeMethod, "http://localhost:0", nil)

	session.SetInput("before " + TruncationMarker + " after")

	assert.NotContains(t, session.Input(), TruncationMarker)
	assert.Equal(t, 2, CountWords(session.Input()))
}
