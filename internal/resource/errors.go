package resource

import (
	"errors"
	"fmt"
)

// ConfigError reports an unusable kind declaration.
type ConfigError struct {
	Kind    string
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("kind %s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FetchError reports that a handle's RDF document could not be retrieved or
// parsed. The handle stays unfetched and a later access retries.
type FetchError struct {
	URI string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch resource %s: %v", e.URI, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// PropertyNotFoundError reports a predicate absent from a handle's properties.
type PropertyNotFoundError struct {
	URI       string
	Predicate string
}

func (e *PropertyNotFoundError) Error() string {
	return fmt.Sprintf("resource %s has no property %s", e.URI, e.Predicate)
}

// IndexOutOfRangeError reports that the endpoint returned no row at an index.
type IndexOutOfRangeError struct {
	Index int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range", e.Index)
}

// IsFetchError returns true if err is or wraps a FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// IsPropertyNotFound returns true if err is or wraps a PropertyNotFoundError.
func IsPropertyNotFound(err error) bool {
	var pe *PropertyNotFoundError
	return errors.As(err, &pe)
}

// IsIndexOutOfRange returns true if err is or wraps an IndexOutOfRangeError.
func IsIndexOutOfRange(err error) bool {
	var ie *IndexOutOfRangeError
	return errors.As(err, &ie)
}
