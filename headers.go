package apiclient

import (
	"fmt"
	"net/http"
)

// HeaderDelete removes a header set by an earlier source when used as the
// value in a later one. The literal string mirrors the wire contract, where
// an undefined value cancels the header.
const HeaderDelete = "undefined"

// MergeHeaders combines header sources left to right into a single
// http.Header. Accepted source kinds are nil (skipped), http.Header,
// map[string]string and map[string][]string; anything else is a programmer
// error surfaced as a HeaderSource RequestError.
//
// Each key from a later source overwrites the same key from an earlier one.
// Header names compare case-insensitively via canonical form. A source value
// equal to HeaderDelete removes the key from the merged result entirely.
func MergeHeaders(sources ...any) (http.Header, error) {
	merged := http.Header{}
	for _, source := range sources {
		if source == nil {
			continue
		}
		switch src := source.(type) {
		case http.Header:
			for name, values := range src {
				applyHeader(merged, name, values)
			}
		case map[string][]string:
			for name, values := range src {
				applyHeader(merged, name, values)
			}
		case map[string]string:
			for name, value := range src {
				applyHeader(merged, name, []string{value})
			}
		default:
			return nil, &RequestError{
				Type:    ErrorTypeHeaderSource,
				Message: fmt.Sprintf("header source must be a header mapping, got %T", source),
			}
		}
	}
	return merged, nil
}

// applyHeader overwrites one header in dst, honoring the delete marker.
func applyHeader(dst http.Header, name string, values []string) {
	dst.Del(name)
	for _, value := range values {
		if value == HeaderDelete {
			dst.Del(name)
			return
		}
		dst.Add(name, value)
	}
}
