package apiclient

import (
	"context"
	"strings"
	"testing"
)

var anySchema = SchemaFunc(func(_ context.Context, value any) (any, error) {
	return value, nil
})

func TestParseEndpointID(t *testing.T) {
	testCases := []struct {
		id       string
		method   string
		template string
	}{
		{"GET /users", "GET", "/users"},
		{"POST /users/:userId/posts", "POST", "/users/:userId/posts"},
		{"PUT /a", "PUT", "/a"},
		{"PATCH /a", "PATCH", "/a"},
		{"DELETE /a/:id", "DELETE", "/a/:id"},
	}

	for _, tc := range testCases {
		method, template, err := parseEndpointID(tc.id)
		if err != nil {
			t.Fatalf("parseEndpointID(%q) returned error: %v", tc.id, err)
		}
		if method != tc.method {
			t.Errorf("Expected method %q, got %q", tc.method, method)
		}
		if template != tc.template {
			t.Errorf("Expected template %q, got %q", tc.template, template)
		}
	}
}

func TestParseEndpointIDRejectsMalformed(t *testing.T) {
	for _, id := range []string{"", "GET", "/users", "GET  ", "HEAD /users", "TRACE /x"} {
		if _, _, err := parseEndpointID(id); err == nil {
			t.Errorf("Expected error for identifier %q, got nil", id)
		}
	}
}

func TestCompileEndpointsRequiresSuccessSchema(t *testing.T) {
	_, err := compileEndpoints(Endpoints{
		"GET /users": {},
	})
	if err == nil {
		t.Fatal("Expected error for endpoint without success schema, got nil")
	}
	if !strings.Contains(err.Error(), "success schema") {
		t.Errorf("Expected success schema error, got %v", err)
	}
}

func TestCompileEndpointsRejectsNonTerminalWildcard(t *testing.T) {
	_, err := compileEndpoints(Endpoints{
		"GET /files/*/meta": {Success: anySchema},
	})
	if err == nil {
		t.Fatal("Expected error for non-terminal wildcard, got nil")
	}
}

func TestCompileEndpointsBuildsRegistry(t *testing.T) {
	registry, err := compileEndpoints(Endpoints{
		"GET /users/:userId":  {Success: anySchema},
		"POST /users":         {Success: anySchema, Body: anySchema},
		"DELETE /users/:id":   {Success: anySchema},
		"GET /files/*":        {Success: anySchema},
		"PATCH /users/:id":    {Success: anySchema, Failure: anySchema},
		"PUT /users/:id/name": {Success: anySchema},
	})
	if err != nil {
		t.Fatalf("compileEndpoints returned error: %v", err)
	}

	if len(registry) != 6 {
		t.Fatalf("Expected 6 registry entries, got %d", len(registry))
	}

	entry := registry["GET /users/:userId"]
	if entry == nil {
		t.Fatal("Expected entry for GET /users/:userId")
	}
	if entry.method != "GET" || entry.template != "/users/:userId" {
		t.Errorf("Unexpected entry %+v", entry)
	}
}
