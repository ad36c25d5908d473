package apiclient

import (
	"fmt"
	"net/http"
	"strings"
)

// Endpoint describes one named HTTP operation: its schemas, keyed in the
// Endpoints map by an identifier of the form "METHOD /path/template".
// Success is mandatory; everything else is optional. Endpoint values are
// consumed once at client construction and read-only afterwards, so a single
// client is safe for arbitrarily many concurrent Request calls.
type Endpoint struct {
	// Params validates the route parameter map before template expansion.
	Params Schema

	// Search validates the query parameter map. When nil, any search
	// variables supplied per call are silently ignored.
	Search Schema

	// Body validates the request body for non-GET methods. When nil, any
	// body supplied per call is silently ignored.
	Body Schema

	// Success validates 2xx response bodies. Required.
	Success Schema

	// Failure validates 4xx response bodies. Its presence changes the
	// Request return shape from the bare success value to *Result.
	Failure Schema
}

// Endpoints is the static endpoint registry supplied to New.
type Endpoints map[string]Endpoint

// allowedMethods is the fixed method set accepted in endpoint identifiers.
var allowedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// compiledEndpoint is the registry entry built once in New.
type compiledEndpoint struct {
	id       string
	method   string
	template string
	def      Endpoint
}

// parseEndpointID splits "METHOD /path/template" and checks the method
// against the fixed set {GET, POST, PUT, PATCH, DELETE}.
func parseEndpointID(id string) (method, template string, err error) {
	method, template, ok := strings.Cut(id, " ")
	if !ok || method == "" || strings.TrimSpace(template) == "" {
		return "", "", fmt.Errorf("endpoint identifier %q must look like \"GET /path\"", id)
	}
	if !allowedMethods[method] {
		return "", "", fmt.Errorf("endpoint %q uses unsupported method %q", id, method)
	}
	return method, template, nil
}

// compileEndpoints parses and checks every registered endpoint. The wildcard
// invariant is enforced here: "*" may only appear as the final segment.
func compileEndpoints(endpoints Endpoints) (map[string]*compiledEndpoint, error) {
	registry := make(map[string]*compiledEndpoint, len(endpoints))
	for id, def := range endpoints {
		method, template, err := parseEndpointID(id)
		if err != nil {
			return nil, err
		}
		if def.Success == nil {
			return nil, fmt.Errorf("endpoint %q declares no success schema", id)
		}
		if star := strings.Index(template, "*"); star >= 0 && star != len(template)-1 {
			return nil, fmt.Errorf("endpoint %q: wildcard must be the final segment", id)
		}
		registry[id] = &compiledEndpoint{
			id:       id,
			method:   method,
			template: template,
			def:      def,
		}
	}
	return registry, nil
}
