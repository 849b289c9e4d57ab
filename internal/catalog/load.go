package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/CalleFreme/ai-methods-explorer/pkg/models"
)

type catalogFile struct {
	Methods []models.MethodDescriptor `yaml:"methods"`
}

// LoadFile reads a catalog definition from a YAML file of the form
//
//	methods:
//	  - id: summarize
//	    name: Text Summarization
//	    ...
//
// and validates it with the same rules as New.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if len(f.Methods) == 0 {
		return nil, fmt.Errorf("catalog file %s defines no methods", path)
	}

	c, err := New(f.Methods)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog file %s: %w", path, err)
	}
	return c, nil
}

// Load returns the catalog for the given file path, falling back to the
// built-in set when the path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
