package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sergiodxa/api-client/internal/casing"
	"github.com/sergiodxa/api-client/internal/queryenc"
	"github.com/sergiodxa/api-client/internal/routepath"
)

// Client is a declarative, schema-validated HTTP request engine: endpoints
// are registered once as "METHOD /path/template" identifiers with their
// schemas, and Request builds, dispatches and classifies one call against
// that registry. The registry is read-only after New, so a single Client is
// safe for concurrent use.
type Client struct {
	httpClient  *http.Client
	rawBaseURL  string
	baseURL     *url.URL
	endpoints   Endpoints
	registry    map[string]*compiledEndpoint
	headers     http.Header
	credentials CredentialsFunc
	token       string
	measure     MeasureFunc
	middleware  []Middleware
	metrics     *MetricsCollector
	debug       *DebugConfig
	logger      Logger

	validationError error
}

// New constructs a Client using the provided functional options. A best
// effort validation is performed; call IsValid / ValidationError for errors.
// A client with an invalid configuration fails every Request with the
// validation error instead of reaching the network.
func New(options ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		endpoints: Endpoints{},
		headers:   http.Header{},
		debug:     DefaultDebugConfig(),
	}

	for _, option := range options {
		option(client)
	}

	if client.measure == nil {
		client.measure = DefaultMeasure(client.logger)
	}

	if err := client.ValidateConfiguration(); err != nil {
		client.validationError = err
		return client
	}

	client.baseURL, _ = url.Parse(client.rawBaseURL)
	client.registry, _ = compileEndpoints(client.endpoints)

	return client
}

// callState carries the identifying facts of one in-flight call for error
// construction and logging.
type callState struct {
	endpoint  string
	method    string
	url       string
	requestID string
	start     time.Time
}

// Request performs the endpoint named by its identifier using the supplied
// call variables. The context is the cancellation handle: it is checked once
// eagerly before dispatch and threaded into the transport for mid-flight
// aborts. No retry, timeout or backoff logic runs here.
//
// For endpoints without a failure schema the return value is the validated
// success value itself. For endpoints with one it is *Result, tagged
// StatusSuccess or StatusFailure. The shape follows the endpoint
// configuration alone, never the runtime response.
func (c *Client) Request(ctx context.Context, endpoint string, call Call) (any, error) {
	st := &callState{endpoint: endpoint, start: time.Now()}
	if c.debug != nil && c.debug.Enabled && c.debug.RequestIDGen != nil {
		st.requestID = c.debug.RequestIDGen()
	}

	if c.validationError != nil {
		return nil, c.validationError
	}

	// Identifier problems surface before any other work; nothing reaches the
	// network for an unknown endpoint.
	if endpoint == "" {
		return nil, c.fail(ErrorTypeInvalidEndpoint, "endpoint identifier must be a non-empty string", nil, st, 0)
	}
	ep, ok := c.registry[endpoint]
	if !ok {
		return nil, c.fail(ErrorTypeUnknownEndpoint, fmt.Sprintf("endpoint %q is not registered", endpoint), nil, st, 0)
	}
	st.method = ep.method

	c.metrics.RecordRequestStart(ep.method, endpoint)
	defer c.metrics.RecordRequestEnd(ep.method, endpoint)

	u, err := c.buildURL(ctx, ep, call, st)
	if err != nil {
		return nil, err
	}
	st.url = u.String()

	headers := c.headers.Clone()
	if c.credentials != nil {
		c.credentials(&Credentials{URL: u, Header: headers, Token: c.token})
	}
	merged, err := MergeHeaders(headers, call.Headers)
	if err != nil {
		var headerErr *RequestError
		if errors.As(err, &headerErr) {
			headerErr.Endpoint = endpoint
			headerErr.Method = ep.method
			headerErr.RequestID = st.requestID
			headerErr.Timestamp = time.Now()
		}
		c.metrics.RecordError(ErrorTypeHeaderSource, ep.method, endpoint)
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, c.fail(ErrorTypeCancelled, fmt.Sprintf("request to %s cancelled before dispatch", endpoint), err, st, 0)
	}

	body, err := c.buildBody(ctx, ep, call, merged, st)
	if err != nil {
		return nil, err
	}
	if merged.Get("Accept") == "" {
		merged.Set("Accept", "application/json")
	}

	req, err := http.NewRequestWithContext(ctx, ep.method, u.String(), body)
	if err != nil {
		return nil, c.fail(ErrorTypeConfiguration, fmt.Sprintf("cannot build request for %s", endpoint), err, st, 0)
	}
	req.Header = merged

	if c.debug != nil && c.debug.Enabled && c.debug.LogRequests && c.logger != nil {
		c.logger.Debug("Starting request", "requestID", st.requestID, "method", ep.method, "url", st.url, "endpoint", endpoint)
	}

	// The measure hook wraps exactly the dispatch-through-validate span and
	// must propagate the thunk's outcome unchanged.
	return c.measure(endpoint, func() (any, error) {
		return c.roundTrip(ctx, ep, req, st)
	})
}

// buildURL validates route and search params and expands the path template
// against the base URL.
func (c *Client) buildURL(ctx context.Context, ep *compiledEndpoint, call Call, st *callState) (*url.URL, error) {
	params := call.Params
	if ep.def.Params != nil && params != nil {
		validated, err := ep.def.Params.Validate(ctx, params)
		if err != nil {
			c.metrics.RecordValidationFailure("params", ep.id)
			return nil, c.fail(ErrorTypeValidation, fmt.Sprintf("route params for %s rejected by schema", ep.id), err, st, 0)
		}
		if m, ok := validated.(map[string]any); ok {
			params = m
		}
	}

	path, warnings, err := routepath.Expand(ep.template, params)
	if err != nil {
		return nil, c.fail(ErrorTypeMissingRouteParam, fmt.Sprintf("cannot build path for %s", ep.id), err, st, 0)
	}
	if c.logger != nil {
		for _, warning := range warnings {
			c.logger.Warn(warning, "endpoint", ep.id)
		}
	}

	u := c.baseURL.ResolveReference(&url.URL{Path: path})

	// Search variables only matter when the endpoint declares a search
	// schema; otherwise they are a no-op, not an error.
	if ep.def.Search != nil && call.Search != nil {
		validated, err := ep.def.Search.Validate(ctx, call.Search)
		if err != nil {
			c.metrics.RecordValidationFailure("search", ep.id)
			return nil, c.fail(ErrorTypeValidation, fmt.Sprintf("search params for %s rejected by schema", ep.id), err, st, 0)
		}
		search := call.Search
		if m, ok := validated.(map[string]any); ok {
			search = m
		}
		q := u.Query()
		queryenc.Encode(q, search)
		u.RawQuery = q.Encode()
	}

	return u, nil
}

// buildBody validates and wire-encodes the request body for non-GET
// endpoints that declare a body schema.
func (c *Client) buildBody(ctx context.Context, ep *compiledEndpoint, call Call, headers http.Header, st *callState) (io.Reader, error) {
	if ep.method == http.MethodGet || ep.def.Body == nil || call.Body == nil {
		return nil, nil
	}

	validated, err := ep.def.Body.Validate(ctx, call.Body)
	if err != nil {
		c.metrics.RecordValidationFailure("body", ep.id)
		return nil, c.fail(ErrorTypeValidation, fmt.Sprintf("request body for %s rejected by schema", ep.id), err, st, 0)
	}
	encoded, err := casing.ToWire(validated)
	if err != nil {
		c.metrics.RecordValidationFailure("body", ep.id)
		return nil, c.fail(ErrorTypeValidation, fmt.Sprintf("request body for %s is not JSON-encodable", ep.id), err, st, 0)
	}
	if headers.Get("Content-Type") == "" {
		headers.Set("Content-Type", "application/json")
	}
	return bytes.NewReader(encoded), nil
}

// roundTrip performs the dispatch-through-validate span: transport send,
// response classification, body parse and terminal status mapping.
func (c *Client) roundTrip(ctx context.Context, ep *compiledEndpoint, req *http.Request, st *callState) (any, error) {
	resp, err := c.executeMiddleware(req)
	if err != nil {
		return nil, c.fail(ErrorTypeNetwork, fmt.Sprintf("request to %s failed", ep.id), err, st, 0)
	}
	defer resp.Body.Close()

	c.metrics.RecordRequest(ep.method, ep.id, resp.StatusCode, time.Since(st.start))

	if c.debug != nil && c.debug.Enabled && c.debug.LogResponses && c.logger != nil {
		c.logger.Debug("Received response", "requestID", st.requestID, "status", resp.StatusCode, "endpoint", ep.id)
	}

	// Classification happens on the Content-Type header alone; the body is
	// never read for non-JSON responses.
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "json") {
		return nil, c.fail(ErrorTypeNonJSONResponse, fmt.Sprintf("response for %s is not JSON (Content-Type %q)", ep.id, contentType), nil, st, resp.StatusCode)
	}

	// The body is fully buffered before parsing, never streamed.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(ErrorTypeNetwork, fmt.Sprintf("reading response body for %s", ep.id), err, st, resp.StatusCode)
	}
	parsed, err := casing.FromWire(raw)
	if err != nil {
		return nil, c.fail(ErrorTypeInvalidJSONResponse, fmt.Sprintf("response for %s is not valid JSON", ep.id), err, st, resp.StatusCode)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		validated, err := ep.def.Success.Validate(ctx, parsed)
		if err != nil {
			c.metrics.RecordValidationFailure("success", ep.id)
			return nil, c.fail(ErrorTypeValidation, fmt.Sprintf("success body for %s rejected by schema", ep.id), err, st, resp.StatusCode)
		}
		if ep.def.Failure == nil {
			return validated, nil
		}
		return &Result{Status: StatusSuccess, Data: validated}, nil

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		// A 4xx without a failure schema is a configuration defect of the
		// caller and is always surfaced, never downgraded.
		if ep.def.Failure == nil {
			return nil, c.fail(ErrorTypeMissingFailureSchema, fmt.Sprintf("endpoint %s received status %d but declares no failure schema", ep.id, resp.StatusCode), nil, st, resp.StatusCode)
		}
		validated, err := ep.def.Failure.Validate(ctx, parsed)
		if err != nil {
			c.metrics.RecordValidationFailure("failure", ep.id)
			return nil, c.fail(ErrorTypeValidation, fmt.Sprintf("failure body for %s rejected by schema", ep.id), err, st, resp.StatusCode)
		}
		return &Result{Status: StatusFailure, Code: resp.StatusCode, Data: validated}, nil

	default:
		// 5xx, and 3xx redirects the transport did not follow itself.
		return nil, c.fail(ErrorTypeServer, fmt.Sprintf("endpoint %s responded with status %d", ep.id, resp.StatusCode), nil, st, resp.StatusCode)
	}
}

// RequestInto performs Request and decodes the validated success value into
// out, which must be a non-nil pointer. For endpoints with a failure schema
// the tagged *Result is also returned; the failure variant leaves out
// untouched. Endpoints without a failure schema return a nil *Result.
func (c *Client) RequestInto(ctx context.Context, endpoint string, call Call, out any) (*Result, error) {
	result, err := c.Request(ctx, endpoint, call)
	if err != nil {
		return nil, err
	}

	data := result
	var tagged *Result
	if r, ok := result.(*Result); ok {
		tagged = r
		if r.Status == StatusFailure {
			return r, nil
		}
		data = r.Data
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return tagged, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return tagged, err
	}
	return tagged, nil
}

// executeMiddleware sends the request through the middleware chain ending at
// the underlying transport.
func (c *Client) executeMiddleware(req *http.Request) (*http.Response, error) {
	if len(c.middleware) == 0 {
		return c.httpClient.Do(req)
	}

	current := RoundTripperFunc(c.httpClient.Do)

	for i := len(c.middleware) - 1; i >= 0; i-- {
		middleware := c.middleware[i]
		next := current
		current = RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			return middleware(r, next)
		})
	}

	return current.RoundTrip(req)
}

// fail records metrics and debug logging for an error and builds the
// RequestError returned to the caller.
func (c *Client) fail(errType, message string, cause error, st *callState, statusCode int) error {
	c.metrics.RecordError(errType, st.method, st.endpoint)

	if c.debug != nil && c.debug.Enabled && c.logger != nil {
		c.logger.Error(message, "requestID", st.requestID, "type", errType, "endpoint", st.endpoint)
	}

	return &RequestError{
		Type:       errType,
		Message:    message,
		Cause:      cause,
		Endpoint:   st.endpoint,
		Method:     st.method,
		URL:        st.url,
		RequestID:  st.requestID,
		StatusCode: statusCode,
		Timestamp:  time.Now(),
		Duration:   time.Since(st.start),
	}
}

// IsValid reports whether configuration validation passed at construction.
func (c *Client) IsValid() bool {
	return c.validationError == nil
}

// ValidationError returns the configuration validation error, if any.
func (c *Client) ValidationError() error {
	return c.validationError
}

// ValidateConfigurationStrict panics if configuration is invalid.
func (c *Client) ValidateConfigurationStrict() {
	if err := c.ValidateConfiguration(); err != nil {
		panic(fmt.Sprintf("invalid client configuration: %v", err))
	}
}

// MustValidateConfiguration re-runs validation returning an error (no panic).
func (c *Client) MustValidateConfiguration() error {
	return c.ValidateConfiguration()
}
