package apiclient

import (
	"errors"
	"fmt"
	"time"
)

// Error type identifiers carried by RequestError.Type.
const (
	ErrorTypeInvalidEndpoint      = "InvalidEndpoint"
	ErrorTypeUnknownEndpoint      = "UnknownEndpoint"
	ErrorTypeMissingRouteParam    = "MissingRouteParam"
	ErrorTypeValidation           = "Validation"
	ErrorTypeCancelled            = "Cancelled"
	ErrorTypeNetwork              = "Network"
	ErrorTypeNonJSONResponse      = "NonJSONResponse"
	ErrorTypeInvalidJSONResponse  = "InvalidJSONResponse"
	ErrorTypeMissingFailureSchema = "MissingFailureSchema"
	ErrorTypeServer               = "Server"
	ErrorTypeHeaderSource         = "HeaderSource"
	ErrorTypeConfiguration        = "Configuration"
)

// Sentinel errors for common failure scenarios, usable with errors.Is.
var (
	// ErrUnknownEndpoint is returned when the endpoint identifier is not registered.
	ErrUnknownEndpoint = errors.New("apiclient: unknown endpoint")

	// ErrCancelled is returned when the context was already cancelled before dispatch.
	ErrCancelled = errors.New("apiclient: request cancelled")

	// ErrNonJSONResponse is returned when the response Content-Type is not JSON.
	ErrNonJSONResponse = errors.New("apiclient: non-JSON response")

	// ErrMissingFailureSchema is returned on a 4xx response for an endpoint
	// with no failure schema configured.
	ErrMissingFailureSchema = errors.New("apiclient: missing failure schema")
)

// sentinelTypes maps sentinel errors to the RequestError type they stand for.
var sentinelTypes = map[error]string{
	ErrUnknownEndpoint:      ErrorTypeUnknownEndpoint,
	ErrCancelled:            ErrorTypeCancelled,
	ErrNonJSONResponse:      ErrorTypeNonJSONResponse,
	ErrMissingFailureSchema: ErrorTypeMissingFailureSchema,
}

// RequestError represents an error from the request engine. Every error the
// engine produces is fatal: nothing is retried, downgraded or defaulted
// internally.
type RequestError struct {
	Type       string
	Message    string
	Endpoint   string
	Method     string
	URL        string
	StatusCode int
	RequestID  string
	Timestamp  time.Time
	Duration   time.Duration
	Cause      error
}

// IsRequestError reports whether err (or anything it wraps) originated from
// this library.
func IsRequestError(err error) bool {
	var requestErr *RequestError
	return errors.As(err, &requestErr)
}

// Error implements error interface.
func (e *RequestError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Cause)
	}
	if e.RequestID != "" {
		msg = fmt.Sprintf("[%s] %s", e.RequestID, msg)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error types for errors.Is. A *RequestError target matches on
// Type; the package sentinels match the type they stand for.
func (e *RequestError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*RequestError); ok {
		return e.Type == targetErr.Type
	}
	if typ, ok := sentinelTypes[target]; ok {
		return e.Type == typ
	}
	return false
}

// DebugInfo renders a multi-line string with diagnostic context.
func (e *RequestError) DebugInfo() string {
	if e == nil {
		return "Error: <nil>"
	}
	info := fmt.Sprintf("Error Type: %s\n", e.Type)
	info += fmt.Sprintf("Message: %s\n", e.Message)
	if e.RequestID != "" {
		info += fmt.Sprintf("Request ID: %s\n", e.RequestID)
	}
	if e.Endpoint != "" {
		info += fmt.Sprintf("Endpoint: %s\n", e.Endpoint)
	}
	if e.Method != "" {
		info += fmt.Sprintf("Method: %s\n", e.Method)
	}
	if e.URL != "" {
		info += fmt.Sprintf("URL: %s\n", e.URL)
	}
	if e.StatusCode > 0 {
		info += fmt.Sprintf("Status Code: %d\n", e.StatusCode)
	}
	if !e.Timestamp.IsZero() {
		info += fmt.Sprintf("Timestamp: %s\n", e.Timestamp.Format(time.RFC3339))
	}
	if e.Duration > 0 {
		info += fmt.Sprintf("Duration: %v\n", e.Duration)
	}
	if e.Cause != nil {
		info += fmt.Sprintf("Cause: %v\n", e.Cause)
	}
	return info
}
