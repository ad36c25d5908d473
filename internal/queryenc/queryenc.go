// Package queryenc serializes already-validated search parameters into URL
// query values. The encoding is deliberately lossy: values are handled by
// run-time kind, and anything unsupported (nil, nested collections,
// functions) contributes nothing to the query string. That is documented
// behavior of the wire contract, not a defect.
package queryenc

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
)

// Encode writes params into q. Per top-level key:
//
//   - string, bool and numeric values overwrite key=value
//   - slices append one key=element per element, preserving order
//   - flat maps append key[sub]=value per entry (sub-keys sorted so the
//     output is deterministic)
//   - nil and any other kind are silently dropped
func Encode(q url.Values, params map[string]any) {
	for key, value := range params {
		if value == nil {
			continue
		}
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			for i := 0; i < rv.Len(); i++ {
				if s, ok := scalarString(rv.Index(i).Interface()); ok {
					q.Add(key, s)
				}
			}
		case reflect.Map:
			subs := make([]string, 0, rv.Len())
			values := make(map[string]string, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				s, ok := scalarString(iter.Value().Interface())
				if !ok {
					continue
				}
				sub := fmt.Sprint(iter.Key().Interface())
				subs = append(subs, sub)
				values[sub] = s
			}
			sort.Strings(subs)
			for _, sub := range subs {
				q.Add(fmt.Sprintf("%s[%s]", key, sub), values[sub])
			}
		default:
			if s, ok := scalarString(value); ok {
				q.Set(key, s)
			}
		}
	}
}

// scalarString renders strings, booleans and numbers; everything else is
// reported unsupported.
func scalarString(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String,
		reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(value), true
	default:
		return "", false
	}
}
