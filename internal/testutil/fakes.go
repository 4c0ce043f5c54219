package testutil

import (
	"context"
	"slices"
	"sync"

	"github.com/afternoon/ontopy/internal/document"
	"github.com/afternoon/ontopy/internal/resource"
)

// FakeEndpoint is an in-memory resource.Executor.
//
// It returns the configured URIs (or error) for every query and records the
// query text it received. Limit and offset are not interpreted: tests choose
// the rows the endpoint returns.
type FakeEndpoint struct {
	mu      sync.Mutex
	uris    []string
	err     error
	queries []string
}

// NewFakeEndpoint creates an endpoint returning uris for every query.
func NewFakeEndpoint(uris ...string) *FakeEndpoint {
	return &FakeEndpoint{uris: uris}
}

// FailWith makes every subsequent query fail with err.
func (f *FakeEndpoint) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// Respond replaces the URIs returned by subsequent queries.
func (f *FakeEndpoint) Respond(uris ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uris = uris
	f.err = nil
}

// Execute implements resource.Executor.
func (f *FakeEndpoint) Execute(_ context.Context, query string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return slices.Clone(f.uris), nil
}

// Queries returns every query text received, in order.
func (f *FakeEndpoint) Queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.queries)
}

// FakeFetcher is an in-memory resource.Fetcher counting calls per URI.
type FakeFetcher struct {
	mu        sync.Mutex
	documents map[string][]document.Triple
	err       error
	calls     map[string]int
}

// NewFakeFetcher creates a fetcher with no documents.
func NewFakeFetcher() *FakeFetcher {
	return &FakeFetcher{
		documents: map[string][]document.Triple{},
		calls:     map[string]int{},
	}
}

// Serve registers the triples returned for uri.
func (f *FakeFetcher) Serve(uri string, triples ...document.Triple) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.documents[uri] = triples
}

// FailWith makes every subsequent fetch fail with err; nil clears it.
func (f *FakeFetcher) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// FetchTriples implements resource.Fetcher. Unknown URIs fail.
func (f *FakeFetcher) FetchTriples(_ context.Context, uri string) ([]document.Triple, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[uri]++
	if f.err != nil {
		return nil, f.err
	}
	triples, ok := f.documents[uri]
	if !ok {
		return nil, &NotFoundError{URI: uri}
	}
	return slices.Clone(triples), nil
}

// Calls returns how many times uri was fetched.
func (f *FakeFetcher) Calls(uri string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[uri]
}

// NotFoundError is returned by FakeFetcher for unregistered URIs.
type NotFoundError struct {
	URI string
}

func (e *NotFoundError) Error() string {
	return "no document for " + e.URI
}

// MemoryRecorder is an in-memory resource.Recorder.
type MemoryRecorder struct {
	mu         sync.Mutex
	executions []resource.Execution
	err        error
}

// FailWith makes every subsequent record call fail with err.
func (r *MemoryRecorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// RecordExecution implements resource.Recorder.
func (r *MemoryRecorder) RecordExecution(_ context.Context, e resource.Execution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.executions = append(r.executions, e)
	return nil
}

// Executions returns everything recorded, in order.
func (r *MemoryRecorder) Executions() []resource.Execution {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.executions)
}
