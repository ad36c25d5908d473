package apiclient

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const userSchemaDoc = `{
	"type": "object",
	"properties": {
		"id": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	},
	"required": ["id"]
}`

func TestJSONSchemaAccepts(t *testing.T) {
	schema, err := JSONSchema(userSchemaDoc)
	if err != nil {
		t.Fatalf("JSONSchema returned error: %v", err)
	}

	value := map[string]any{"id": "123", "age": 30}
	validated, err := schema.Validate(context.Background(), value)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	if got, ok := validated.(map[string]any); !ok || got["id"] != "123" {
		t.Errorf("Expected validated value passed through, got %v", validated)
	}
}

func TestJSONSchemaRejectsWithFieldDetail(t *testing.T) {
	schema := MustJSONSchema(userSchemaDoc)

	_, err := schema.Validate(context.Background(), map[string]any{"age": -1})
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *SchemaError, got %T", err)
	}
	if len(schemaErr.Causes) == 0 {
		t.Fatal("Expected field-level causes")
	}
	if !strings.Contains(schemaErr.Error(), "schema validation failed") {
		t.Errorf("Unexpected error message %q", schemaErr.Error())
	}
}

func TestJSONSchemaMalformedDocument(t *testing.T) {
	if _, err := JSONSchema(`{"type": nonsense`); err == nil {
		t.Error("Expected error for malformed schema document, got nil")
	}
}

func TestMustJSONSchemaPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected MustJSONSchema to panic on malformed document")
		}
	}()
	MustJSONSchema(`{`)
}

func TestSchemaFunc(t *testing.T) {
	doubled := SchemaFunc(func(_ context.Context, value any) (any, error) {
		n, ok := value.(int)
		if !ok {
			return nil, errors.New("not an int")
		}
		return n * 2, nil
	})

	validated, err := doubled.Validate(context.Background(), 21)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if validated != 42 {
		t.Errorf("Expected parsed value 42, got %v", validated)
	}

	if _, err := doubled.Validate(context.Background(), "nope"); err == nil {
		t.Error("Expected error from rejecting SchemaFunc, got nil")
	}
}
