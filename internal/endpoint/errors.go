package endpoint

import (
	"errors"
	"fmt"
)

// QueryError reports that the endpoint rejected a query as malformed.
type QueryError struct {
	// Query is the text that was sent.
	Query string

	// Status is the HTTP status code (400).
	Status int

	// Message is the endpoint's response body, truncated.
	Message string
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("'%s' is not a valid SPARQL query: %s", e.Query, e.Message)
	}
	return fmt.Sprintf("'%s' is not a valid SPARQL query", e.Query)
}

// TransportError reports any endpoint failure other than query rejection.
type TransportError struct {
	// URL is the endpoint base URL.
	URL string

	// Status is the HTTP status code, or 0 if no response was received.
	Status int

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("endpoint %s: status %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("endpoint %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsQueryError returns true if err is or wraps a QueryError.
func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}

// IsTransportError returns true if err is or wraps a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
