// Package routepath expands path templates of the form used by endpoint
// identifiers: literal segments, named parameters (":name"), optional
// parameters (":name?"), optional literals ("docs?") and a single trailing
// wildcard ("*") resolved from the parameter key "*".
package routepath

import (
	"fmt"
	"strings"
)

// MissingParamError reports a required named parameter that has no value in
// the supplied parameter map.
type MissingParamError struct {
	Name string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("missing required route parameter %q", e.Name)
}

// Expand substitutes params into template and returns the resulting path.
// The second return value carries warning diagnostics (currently only the
// bare trailing "*" normalization); they are advisory, never fatal.
//
// A required parameter with no entry (or a nil entry) in params fails with
// *MissingParamError. An optional parameter with no entry resolves to the
// empty string and its segment is dropped. Values are rendered with
// fmt.Sprint at join time, so numbers pass through untouched.
func Expand(template string, params map[string]any) (string, []string, error) {
	var warnings []string

	tpl := template
	if strings.HasSuffix(tpl, "*") && !strings.HasSuffix(tpl, "/*") {
		tpl = strings.TrimSuffix(tpl, "*") + "/*"
		warnings = append(warnings, fmt.Sprintf("template %q: bare trailing * normalized to /*", template))
	}

	absolute := strings.HasPrefix(template, "/")
	trailing := strings.HasSuffix(template, "/")

	segments := strings.Split(tpl, "/")
	resolved := make([]string, 0, len(segments))
	for i, segment := range segments {
		switch {
		case segment == "*" && i == len(segments)-1:
			if value, ok := params["*"]; ok && value != nil {
				resolved = append(resolved, fmt.Sprint(value))
			}
		case strings.HasPrefix(segment, ":"):
			name := strings.TrimPrefix(segment, ":")
			optional := strings.HasSuffix(name, "?")
			name = strings.TrimSuffix(name, "?")
			value, ok := params[name]
			if !ok || value == nil {
				if !optional {
					return "", warnings, &MissingParamError{Name: name}
				}
				continue
			}
			resolved = append(resolved, fmt.Sprint(value))
		default:
			resolved = append(resolved, strings.TrimSuffix(segment, "?"))
		}
	}

	parts := resolved[:0]
	for _, segment := range resolved {
		if segment != "" {
			parts = append(parts, segment)
		}
	}

	path := strings.Join(parts, "/")
	if absolute {
		path = "/" + path
	}
	if trailing && !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path, warnings, nil
}
