package workbench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CalleFreme/ai-methods-explorer/pkg/models"
)

// ErrMethodNotFound reports that a successfully loaded catalog has no entry
// for the requested id. The resolver schedules a redirect back to the
// catalog when this happens.
var ErrMethodNotFound = errors.New("method not found")

// RedirectDelay is how long a not-found message stays on screen before the
// resolver navigates back to the catalog.
const RedirectDelay = 2 * time.Second

// MethodLister yields the full method catalog. *Loader satisfies it; tests
// substitute fakes.
type MethodLister interface {
	Methods(ctx context.Context) ([]models.MethodDescriptor, error)
}

// Resolver locates one method descriptor by id. It fetches the full list and
// scans it rather than fetching a single descriptor; the catalog is small
// enough that the wasted transfer is not worth a second endpoint.
type Resolver struct {
	lister   MethodLister
	redirect func()
	delay    time.Duration
}

// NewResolver creates a Resolver. redirect is invoked (once, after
// RedirectDelay) when a lookup hits a loaded catalog but finds no matching
// id; nil disables the navigation.
func NewResolver(lister MethodLister, redirect func()) *Resolver {
	return &Resolver{
		lister:   lister,
		redirect: redirect,
		delay:    RedirectDelay,
	}
}

// Resolve returns the descriptor whose id matches. A failed catalog fetch
// returns the loader's error unchanged and schedules no redirect; a missing
// id returns ErrMethodNotFound and schedules the redirect.
func (r *Resolver) Resolve(ctx context.Context, id string) (models.MethodDescriptor, error) {
	methods, err := r.lister.Methods(ctx)
	if err != nil {
		return models.MethodDescriptor{}, err
	}

	for _, method := range methods {
		if method.ID == id {
			return method, nil
		}
	}

	if r.redirect != nil {
		time.AfterFunc(r.delay, r.redirect)
	}
	return models.MethodDescriptor{}, fmt.Errorf("%w: %q", ErrMethodNotFound, id)
}
