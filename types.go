package apiclient

import (
	"net/http"
	"net/url"
)

// Call carries the per-request variables for a single Request invocation.
// Each field is consulted only when the endpoint declares the matching
// schema (or, for Params, when the path template names parameters); values
// supplied for undeclared schemas are a no-op, not an error.
type Call struct {
	// Params resolves named path template parameters. The wildcard segment
	// reads the key "*".
	Params map[string]any

	// Search becomes the URL query string, validated against the endpoint's
	// search schema first.
	Search map[string]any

	// Body is the request body for non-GET endpoints with a body schema. It
	// is validated, then key-translated to wire casing and serialized as JSON.
	Body any

	// Headers is an optional per-call header source merged over the
	// client-level headers. Accepted kinds are the same as MergeHeaders'.
	Headers any
}

// Status tags the two variants of Result.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Result is the tagged return shape used by endpoints that declare a failure
// schema. Endpoints without one return their validated success value
// directly instead; the shape is fixed by endpoint configuration at
// registration time, never by the runtime response.
//
// Code is only populated on the failure variant.
type Result struct {
	Status Status
	Code   int
	Data   any
}

// Credentials is handed to the credentials hook before the request is built.
// The hook may mutate URL and Header in place; its return value, if any, is
// never consumed.
type Credentials struct {
	URL    *url.URL
	Header http.Header
	Token  string
}

// CredentialsFunc injects authentication material into an outgoing request.
// It is invoked synchronously once per request, after the URL is built and
// before per-call headers are merged.
type CredentialsFunc func(*Credentials)

// MeasureFunc wraps the dispatch-through-validate span of a request. The
// hook receives the endpoint identifier and a thunk performing that span; it
// must invoke the thunk exactly once and propagate its result and error
// unchanged. A hook that returns its own error replaces the engine's.
type MeasureFunc func(endpoint string, thunk func() (any, error)) (any, error)

// Middleware represents a middleware function wrapped around the transport.
type Middleware func(req *http.Request, next RoundTripper) (*http.Response, error)

// RoundTripper represents the HTTP transport interface.
type RoundTripper interface {
	RoundTrip(*http.Request) (*http.Response, error)
}

// RoundTripperFunc is a helper type for middleware.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Option represents a configuration option.
type Option func(*Client)
