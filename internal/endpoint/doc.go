// Package endpoint is a low-level client for SPARQL endpoints over HTTP.
//
// Queries are sent as GET requests with the query text in the "query"
// parameter. Results are read in the SPARQL Query Results XML Format.
//
// Failures are split in two:
//   - QueryError: the endpoint rejected the query text (HTTP 400)
//   - TransportError: anything else (network, non-2xx status, unreadable body)
//
// The client performs no retries and no caching; each call issues exactly one
// request.
package endpoint
