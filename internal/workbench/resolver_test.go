package workbench

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CalleFreme/ai-methods-explorer/pkg/models"
)

var testMethods = []models.MethodDescriptor{
	{ID: "summarize", Name: "Text Summarization", Model: "facebook/bart-large-cnn", Endpoint: "/api/summarize"},
	{ID: "sentiment", Name: "Sentiment Analysis", Model: "distilbert-base-uncased-finetuned-sst-2-english", Endpoint: "/api/sentiment"},
}

type staticLister struct {
	methods []models.MethodDescriptor
	err     error
}

func (s staticLister) Methods(ctx context.Context) ([]models.MethodDescriptor, error) {
	return s.methods, s.err
}

func TestLoaderMethods(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/methods", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"methods": [
			{"id": "summarize", "name": "Text Summarization", "model": "facebook/bart-large-cnn", "endpoint": "/api/summarize"},
			{"id": "sentiment", "name": "Sentiment Analysis", "model": "distilbert-base-uncased-finetuned-sst-2-english", "endpoint": "/api/sentiment"}
		]}`))
	}))
	defer server.Close()

	loader := NewLoader(server.URL, nil)
	methods, err := loader.Methods(context.Background())

	require.NoError(t, err)
	require.Len(t, methods, 2)
	assert.Equal(t, "summarize", methods[0].ID)
	assert.Equal(t, "sentiment", methods[1].ID)
}

func TestLoaderNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	loader := NewLoader(server.URL, nil)
	_, err := loader.Methods(context.Background())

	assert.True(t, errors.Is(err, ErrCatalogUnavailable))
}

func TestLoaderTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	loader := NewLoader(server.URL, nil)
	_, err := loader.Methods(context.Background())

	assert.True(t, errors.Is(err, ErrCatalogUnavailable))
}

func TestResolverFindsMethod(t *testing.T) {
	redirected := make(chan struct{}, 1)
	resolver := NewResolver(staticLister{methods: testMethods}, func() { redirected <- struct{}{} })
	resolver.delay = time.Millisecond

	method, err := resolver.Resolve(context.Background(), "summarize")

	require.NoError(t, err)
	assert.Equal(t, "Text Summarization", method.Name)
	assert.Equal(t, "/api/summarize", method.Endpoint)

	select {
	case <-redirected:
		t.Fatal("redirect scheduled for a successful resolution")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestResolverNotFoundSchedulesRedirect(t *testing.T) {
	redirected := make(chan struct{}, 1)
	resolver := NewResolver(staticLister{methods: testMethods}, func() { redirected <- struct{}{} })
	resolver.delay = 5 * time.Millisecond

	_, err := resolver.Resolve(context.Background(), "nonexistent")

	assert.True(t, errors.Is(err, ErrMethodNotFound))

	select {
	case <-redirected:
	case <-time.After(time.Second):
		t.Fatal("redirect never fired")
	}
}

func TestResolverLoadErrorNoRedirect(t *testing.T) {
	redirected := make(chan struct{}, 1)
	loadErr := errors.New("catalog fetch failed")
	resolver := NewResolver(staticLister{err: loadErr}, func() { redirected <- struct{}{} })
	resolver.delay = time.Millisecond

	_, err := resolver.Resolve(context.Background(), "summarize")

	assert.True(t, errors.Is(err, loadErr))
	assert.False(t, errors.Is(err, ErrMethodNotFound))

	select {
	case <-redirected:
		t.Fatal("redirect scheduled for a load failure")
	case <-time.After(50 * time.Millisecond):
	}
}
