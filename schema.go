package apiclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is the validation capability consumed by the request engine. It is
// invoked on route params, search params, request bodies and response bodies
// before they are used; Validate returns the parsed value on success or a
// validation error carrying field-level detail.
//
// The engine treats the validator as opaque: any implementation works, and
// its errors are surfaced unchanged as the cause of a Validation error.
type Schema interface {
	Validate(ctx context.Context, value any) (any, error)
}

// SchemaFunc adapts a plain function to the Schema interface.
type SchemaFunc func(ctx context.Context, value any) (any, error)

func (f SchemaFunc) Validate(ctx context.Context, value any) (any, error) {
	return f(ctx, value)
}

// FieldError is one field-level rejection from a schema.
type FieldError struct {
	Field       string
	Description string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

// SchemaError is the validation failure produced by the built-in JSON Schema
// adapter. Causes holds one entry per rejected field.
type SchemaError struct {
	Causes []FieldError
}

func (e *SchemaError) Error() string {
	if e == nil || len(e.Causes) == 0 {
		return "schema validation failed"
	}
	details := make([]string, len(e.Causes))
	for i, cause := range e.Causes {
		details[i] = cause.String()
	}
	return "schema validation failed: " + strings.Join(details, "; ")
}

// jsonSchema wraps a compiled JSON Schema document.
type jsonSchema struct {
	compiled *gojsonschema.Schema
}

// JSONSchema compiles a JSON Schema document into a Schema. The document is
// compiled once; the returned Schema is safe for concurrent use.
func JSONSchema(document string) (Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(document))
	if err != nil {
		return nil, fmt.Errorf("compiling JSON schema: %w", err)
	}
	return &jsonSchema{compiled: compiled}, nil
}

// MustJSONSchema is JSONSchema panicking on a malformed document. Intended
// for package-level endpoint tables.
func MustJSONSchema(document string) Schema {
	schema, err := JSONSchema(document)
	if err != nil {
		panic(err)
	}
	return schema
}

func (s *jsonSchema) Validate(_ context.Context, value any) (any, error) {
	result, err := s.compiled.Validate(gojsonschema.NewGoLoader(value))
	if err != nil {
		return nil, err
	}
	if !result.Valid() {
		schemaErr := &SchemaError{}
		for _, detail := range result.Errors() {
			schemaErr.Causes = append(schemaErr.Causes, FieldError{
				Field:       detail.Field(),
				Description: detail.Description(),
			})
		}
		return nil, schemaErr
	}
	return value, nil
}
