package workbench

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/CalleFreme/ai-methods-explorer/pkg/models"
)

// ErrCatalogUnavailable reports that the method list could not be fetched.
// Callers show CatalogLoadMessage and an empty list; there is no automatic
// retry.
var ErrCatalogUnavailable = errors.New("could not load the method catalog")

// CatalogLoadMessage is the fixed text shown when the catalog fetch fails.
const CatalogLoadMessage = "Could not load methods. Please try again later."

// Loader fetches the method catalog from the backend. The base URL is
// injected once at construction; nothing else in the workflow hardcodes the
// service location.
type Loader struct {
	baseURL string
	httpc   *http.Client
}

// NewLoader creates a Loader against the service at baseURL. A nil client
// falls back to http.DefaultClient.
func NewLoader(baseURL string, httpc *http.Client) *Loader {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Loader{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   httpc,
	}
}

// Methods issues one read of the full method list and returns the ordered
// descriptors. Transport errors and non-success statuses both collapse into
// ErrCatalogUnavailable.
func (l *Loader) Methods(ctx context.Context) ([]models.MethodDescriptor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/api/methods", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	resp, err := l.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status code %d", ErrCatalogUnavailable, resp.StatusCode)
	}

	var payload models.MethodsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return payload.Methods, nil
}
