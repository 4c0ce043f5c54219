package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/afternoon/ontopy/internal/config"
	"github.com/afternoon/ontopy/internal/endpoint"
	"github.com/afternoon/ontopy/internal/resource"
	"github.com/afternoon/ontopy/internal/sparql"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Runtime failure (endpoint rejected the query, network error, missing property)
	ExitCommandError = 2 // Command error (bad config, bad arguments, unusable query)
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric   = "E001" // Generic/unknown error
	ErrCodeConfig    = "E002" // Config file or kind declaration invalid
	ErrCodeBuild     = "E003" // Query cannot be built or serialized
	ErrCodeQuery     = "E004" // Endpoint rejected the query
	ErrCodeTransport = "E005" // Endpoint unreachable or bad response
	ErrCodeFetch     = "E006" // Resource document could not be fetched
	ErrCodeNotFound  = "E007" // Property or index not present
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// An ExitError carries its own code; other errors are classified by type.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	_, exit := classify(err)
	return exit
}

// ErrorCode returns the CLI error code for err.
func ErrorCode(err error) string {
	code, _ := classify(err)
	return code
}

// classify maps domain errors to an error code and a default exit code.
func classify(err error) (string, int) {
	var (
		buildErr *sparql.BuildError
		cfgErr   *config.Error
		kindErr  *resource.ConfigError
		queryErr *endpoint.QueryError
		transErr *endpoint.TransportError
		fetchErr *resource.FetchError
		propErr  *resource.PropertyNotFoundError
		rangeErr *resource.IndexOutOfRangeError
	)
	switch {
	case errors.As(err, &buildErr):
		return ErrCodeBuild, ExitCommandError
	case errors.As(err, &cfgErr), errors.As(err, &kindErr):
		return ErrCodeConfig, ExitCommandError
	case errors.As(err, &queryErr):
		return ErrCodeQuery, ExitFailure
	case errors.As(err, &transErr):
		return ErrCodeTransport, ExitFailure
	case errors.As(err, &fetchErr):
		return ErrCodeFetch, ExitFailure
	case errors.As(err, &propErr), errors.As(err, &rangeErr):
		return ErrCodeNotFound, ExitFailure
	default:
		return ErrCodeGeneric, ExitFailure
	}
}

// TextRenderer is implemented by results with a custom text form.
type TextRenderer interface {
	WriteText(w io.Writer) error
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E001", "E002", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	if r, ok := data.(TextRenderer); ok {
		return r.WriteText(f.Writer)
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
