package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CalleFreme/ai-methods-explorer/pkg/models"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, 2, c.Len())

	sum, ok := c.ByID("summarize")
	assert.True(t, ok)
	assert.Equal(t, "Text Summarization", sum.Name)
	assert.Equal(t, "facebook/bart-large-cnn", sum.Model)
	assert.Equal(t, "/api/summarize", sum.Endpoint)

	sen, ok := c.ByID("sentiment")
	assert.True(t, ok)
	assert.Equal(t, "distilbert-base-uncased-finetuned-sst-2-english", sen.Model)
	assert.Equal(t, "/api/sentiment", sen.Endpoint)

	_, ok = c.ByID("nonexistent")
	assert.False(t, ok)
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	_, err := New([]models.MethodDescriptor{
		{ID: "summarize", Endpoint: "/api/summarize"},
		{ID: "summarize", Endpoint: "/api/other"},
	})
	assert.ErrorContains(t, err, "duplicate method id")
}

func TestNew_RequiresIDAndEndpoint(t *testing.T) {
	_, err := New([]models.MethodDescriptor{{Name: "No ID", Endpoint: "/x"}})
	assert.ErrorContains(t, err, "no id")

	_, err = New([]models.MethodDescriptor{{ID: "x"}})
	assert.ErrorContains(t, err, "no endpoint")
}

func TestNew_KeepsOrder(t *testing.T) {
	c, err := New([]models.MethodDescriptor{
		{ID: "b", Endpoint: "/b"},
		{ID: "a", Endpoint: "/a"},
	})
	assert.NoError(t, err)

	got := c.Methods()
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `
methods:
  - id: summarize
    name: Text Summarization
    description: Shortens text.
    model: facebook/bart-large-cnn
    endpoint: /api/summarize
  - id: keywords
    name: Keyword Extraction
    description: Pulls key phrases.
    model: ml6team/keyphrase-extraction-kbir-inspec
    endpoint: /api/keywords
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	kw, ok := c.ByID("keywords")
	assert.True(t, ok)
	assert.Equal(t, "Keyword Extraction", kw.Name)
}

func TestLoadFile_DuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `
methods:
  - id: summarize
    endpoint: /api/summarize
  - id: summarize
    endpoint: /api/summarize
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "duplicate method id")
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestModelShortName(t *testing.T) {
	m := models.MethodDescriptor{Model: "facebook/bart-large-cnn"}
	assert.Equal(t, "bart-large-cnn", m.ModelShortName())

	m = models.MethodDescriptor{Model: "distilbert-base-uncased-finetuned-sst-2-english"}
	assert.Equal(t, "distilbert-base-uncased-finetuned-sst-2-english", m.ModelShortName())
}
