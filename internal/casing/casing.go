// Package casing translates JSON bodies between the wire naming convention
// (snake_case keys) and the in-process naming convention (camelCase keys).
//
// The rewrite is a plain pre/post-processing pass over the generic decoded
// value tree rather than a serializer hook, so it works with any value that
// encoding/json can handle. Object keys are renamed recursively at every
// depth; array elements are walked but their indices are never treated as
// keys. Keys containing characters outside [a-zA-Z0-9_] are not guaranteed
// to survive a round trip.
package casing

import (
	"encoding/json"
	"strings"
)

// ToWire renames every object key in v from camelCase to snake_case and
// serializes the result to JSON. v may be any JSON-encodable value; it is
// first decoded into a generic tree so struct fields and typed maps are
// handled uniformly.
func ToWire(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}
	return json.Marshal(rewrite(tree, SnakeCase))
}

// FromWire parses JSON text and renames every object key from snake_case to
// camelCase. The returned value is a generic tree (map[string]any, []any and
// JSON scalars).
func FromWire(data []byte) (any, error) {
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return rewrite(tree, CamelCase), nil
}

// rewrite walks the decoded tree applying rename to object keys only.
func rewrite(v any, rename func(string) string) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for key, child := range node {
			out[rename(key)] = rewrite(child, rename)
		}
		return out
	case []any:
		for i, child := range node {
			node[i] = rewrite(child, rename)
		}
		return node
	default:
		return v
	}
}

// SnakeCase converts a camelCase identifier to snake_case.
func SnakeCase(s string) string {
	var result []byte
	for i, c := range s {
		if i > 0 && c >= 'A' && c <= 'Z' {
			result = append(result, '_')
		}
		result = append(result, byte(c))
	}
	return strings.ToLower(string(result))
}

// CamelCase converts a snake_case identifier to camelCase. The first word is
// left untouched so already-camelCase keys pass through unchanged.
func CamelCase(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}
	return strings.Join(parts, "")
}
