package apiclient

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// WithBaseURL sets the base URL every endpoint path resolves against.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.rawBaseURL = baseURL
	}
}

// WithEndpoints registers the static endpoint map. The map is consumed once
// at construction and read-only thereafter.
func WithEndpoints(endpoints Endpoints) Option {
	return func(c *Client) {
		c.endpoints = endpoints
	}
}

// WithHTTPClient sets a custom HTTP client used as the transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the transport timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if c.httpClient != nil {
			c.httpClient.Timeout = d
		}
	}
}

// WithHeaders sets client-level headers sent with every request. Per-call
// headers are merged over these and may cancel one with HeaderDelete.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for name, value := range headers {
			c.headers.Set(name, value)
		}
	}
}

// WithHeader sets a single client-level header.
func WithHeader(name, value string) Option {
	return func(c *Client) {
		c.headers.Set(name, value)
	}
}

// WithCredentials sets the credentials hook invoked synchronously before
// each request is built. The hook may mutate the URL and headers in place.
func WithCredentials(fn CredentialsFunc) Option {
	return func(c *Client) {
		c.credentials = fn
	}
}

// WithToken sets the token handed to the credentials hook.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithMeasure replaces the measurement hook wrapping each request's
// dispatch-through-validate span.
func WithMeasure(fn MeasureFunc) Option {
	return func(c *Client) {
		c.measure = fn
	}
}

// WithMiddleware adds middleware to the client.
func WithMiddleware(middleware ...Middleware) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, middleware...)
	}
}

// WithMetrics enables Prometheus metrics collection.
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector.
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// WithDebug enables debug logging with default configuration.
func WithDebug() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
	}
}

// WithDebugConfig sets custom debug configuration.
func WithDebugConfig(config *DebugConfig) Option {
	return func(c *Client) {
		c.debug = config
	}
}

// WithLogger sets a custom logger for debug output.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSimpleLogger enables debug logging with a simple console logger.
func WithSimpleLogger() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
		c.logger = NewSimpleLogger()
	}
}

// WithRequestIDGenerator sets a custom function for generating request IDs.
func WithRequestIDGenerator(gen func() string) Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.RequestIDGen = gen
	}
}

// ValidateConfiguration validates the client configuration and returns an
// error if invalid.
func (c *Client) ValidateConfiguration() error {
	var problems []string

	problems = append(problems, c.validateBaseURLConfig()...)
	problems = append(problems, c.validateEndpointConfig()...)
	problems = append(problems, c.validateHTTPClientConfig()...)
	problems = append(problems, c.validateDebugConfig()...)

	if len(problems) > 0 {
		return &RequestError{
			Type:    ErrorTypeConfiguration,
			Message: "configuration validation failed",
			Cause:   fmt.Errorf("validation errors: %v", problems),
		}
	}

	return nil
}

// validateBaseURLConfig validates the base URL.
func (c *Client) validateBaseURLConfig() []string {
	var problems []string

	if c.rawBaseURL == "" {
		problems = append(problems, "baseURL must be set")
		return problems
	}

	u, err := url.Parse(c.rawBaseURL)
	if err != nil {
		problems = append(problems, fmt.Sprintf("baseURL %q does not parse: %v", c.rawBaseURL, err))
		return problems
	}
	if u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("baseURL %q must be absolute (scheme and host)", c.rawBaseURL))
	}

	return problems
}

// validateEndpointConfig compiles the endpoint registry and reports
// identifier or schema problems.
func (c *Client) validateEndpointConfig() []string {
	var problems []string

	if _, err := compileEndpoints(c.endpoints); err != nil {
		problems = append(problems, err.Error())
	}

	return problems
}

// validateHTTPClientConfig validates transport configuration.
func (c *Client) validateHTTPClientConfig() []string {
	var problems []string

	if c.httpClient == nil {
		problems = append(problems, "httpClient must not be nil")
	}

	return problems
}

// validateDebugConfig validates debug-related configuration.
func (c *Client) validateDebugConfig() []string {
	var problems []string

	if c.debug != nil && c.debug.Enabled && c.debug.RequestIDGen == nil {
		problems = append(problems, "debug is enabled but RequestIDGen is nil")
	}

	return problems
}
