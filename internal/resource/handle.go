package resource

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/afternoon/ontopy/internal/sparql"
)

// Handle is one resource of a kind, identified by URI.
//
// Properties are fetched on first access and cached for the handle's
// lifetime. Two handles are the same resource iff their URIs are equal.
//
// Thread-safety: first access holds the handle's mutex for the duration of
// the fetch, so concurrent callers share a single fetch.
type Handle struct {
	kind *Kind
	uri  string

	mu      sync.Mutex
	fetched bool
	props   map[string]string
}

// URI returns the resource URI.
func (h *Handle) URI() string { return h.uri }

// Kind returns the kind that produced the handle.
func (h *Handle) Kind() *Kind { return h.kind }

// Term returns the handle as a query term, rendered <uri>.
func (h *Handle) Term() sparql.Term { return sparql.Ref{URI: h.uri} }

// Equal reports whether both handles identify the same resource.
func (h *Handle) Equal(other *Handle) bool {
	if h == nil || other == nil {
		return h == other
	}
	return h.uri == other.uri
}

func (h *Handle) String() string {
	return fmt.Sprintf("<%s: %s>", h.kind.Name(), h.uri)
}

// Fetched reports whether the properties have been materialized.
func (h *Handle) Fetched() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.fetched
}

// Properties returns a copy of the resource's properties, fetching them on
// first use.
//
// Every triple of the resource's document contributes predicate -> value when
// its object is an IRI, an untagged literal, or a literal tagged with the
// kind's language. Later triples overwrite earlier ones for the same
// predicate, in document order.
func (h *Handle) Properties(ctx context.Context) (map[string]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.loadLocked(ctx); err != nil {
		return nil, err
	}
	return maps.Clone(h.props), nil
}

// Get returns one property value, fetching properties on first use.
func (h *Handle) Get(ctx context.Context, predicate string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.loadLocked(ctx); err != nil {
		return "", err
	}
	v, ok := h.props[predicate]
	if !ok {
		return "", &PropertyNotFoundError{URI: h.uri, Predicate: predicate}
	}
	return v, nil
}

// loadLocked materializes properties once. Caller must hold h.mu.
func (h *Handle) loadLocked(ctx context.Context) error {
	if h.fetched {
		return nil
	}

	triples, err := h.kind.fetch.FetchTriples(ctx, h.uri)
	if err != nil {
		h.kind.logger.Debug("property fetch failed", "uri", h.uri, "error", err)
		return &FetchError{URI: h.uri, Err: err}
	}

	props := make(map[string]string, len(triples))
	for _, t := range triples {
		if t.Literal && !h.kind.matchesLanguage(t.Lang) {
			continue
		}
		props[t.Predicate] = t.Object
	}

	h.props = props
	h.fetched = true
	h.kind.logger.Debug("properties fetched", "uri", h.uri, "properties", len(props))
	return nil
}
