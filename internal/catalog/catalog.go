// Package catalog holds the registry of analysis methods the application
// exposes. The built-in entries mirror the hosted models the service proxies
// to; deployments may swap the set via a YAML file.
package catalog

import (
	"fmt"

	"github.com/CalleFreme/ai-methods-explorer/pkg/models"
)

// Catalog is an ordered, id-unique collection of method descriptors.
type Catalog struct {
	methods []models.MethodDescriptor
	byID    map[string]models.MethodDescriptor
}

// New builds a Catalog from the given descriptors. Descriptor ids must be
// unique and every descriptor needs an id and an endpoint; order is kept.
func New(methods []models.MethodDescriptor) (*Catalog, error) {
	c := &Catalog{
		methods: make([]models.MethodDescriptor, 0, len(methods)),
		byID:    make(map[string]models.MethodDescriptor, len(methods)),
	}
	for _, m := range methods {
		if m.ID == "" {
			return nil, fmt.Errorf("method %q has no id", m.Name)
		}
		if m.Endpoint == "" {
			return nil, fmt.Errorf("method %q has no endpoint", m.ID)
		}
		if _, dup := c.byID[m.ID]; dup {
			return nil, fmt.Errorf("duplicate method id %q", m.ID)
		}
		c.methods = append(c.methods, m)
		c.byID[m.ID] = m
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New([]models.MethodDescriptor{
		{
			ID:          "summarize",
			Name:        "Text Summarization",
			Description: "Condenses long text into a shorter summary while preserving key information.",
			Model:       "facebook/bart-large-cnn",
			Endpoint:    "/api/summarize",
		},
		{
			ID:          "sentiment",
			Name:        "Sentiment Analysis",
			Description: "Analyzes the sentiment, emotional tone of a text (positive/negative) and returns a score.",
			Model:       "distilbert-base-uncased-finetuned-sst-2-english",
			Endpoint:    "/api/sentiment",
		},
	})
	if err != nil {
		// the built-in set is static; New can only fail on a bad edit here
		panic(err)
	}
	return c
}

// Methods returns the descriptors in catalog order.
func (c *Catalog) Methods() []models.MethodDescriptor {
	out := make([]models.MethodDescriptor, len(c.methods))
	copy(out, c.methods)
	return out
}

// ByID looks up a descriptor by its id.
func (c *Catalog) ByID(id string) (models.MethodDescriptor, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// Len reports the number of methods.
func (c *Catalog) Len() int {
	return len(c.methods)
}
