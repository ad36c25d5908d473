// Package apiclient is a declarative, schema-validated HTTP request engine:
//
//   - Endpoints registered once as "METHOD /path/template" identifiers with
//     optional route-param, search-param and body schemas plus mandatory
//     success (and optional failure) response schemas
//   - Path templates with named (":id"), optional (":id?") and trailing
//     wildcard ("*") segments
//   - Type-driven query encoding (arrays append, flat maps expand to
//     key[sub]=value, unsupported values drop)
//   - snake_case <-> camelCase key translation on JSON bodies in both
//     directions
//   - Status-code classification into success values, tagged failure results
//     and a fatal error taxonomy – no retries, no caching, no silent
//     downgrades
//   - Credentials and measurement hooks, middleware chain, Prometheus
//     metrics and lightweight structured debug logging
//
// Design goals:
//   - Small surface area – functional options configure everything, Request
//     is the single entry point
//   - Statically predictable result shapes – whether a call returns the bare
//     success value or a tagged *Result is fixed by endpoint configuration,
//     never by the runtime response
//   - Safe concurrent use of a single *Client instance
//   - Extensibility via user supplied Schema implementations, middleware and
//     hooks
//
// Typical usage:
//
//	client := apiclient.New(
//	    apiclient.WithBaseURL("https://api.example.com"),
//	    apiclient.WithEndpoints(apiclient.Endpoints{
//	        "GET /users/:userId": {
//	            Success: apiclient.MustJSONSchema(`{"type":"object"}`),
//	        },
//	    }),
//	)
//	user, err := client.Request(ctx, "GET /users/:userId", apiclient.Call{
//	    Params: map[string]any{"userId": 123},
//	})
//
// Callers wanting named convenience methods wrap the client in their own
// struct and call Request from each method; there is no subclassing surface.
// The library avoids opinionated logging: provide a Logger (e.g. via
// WithSimpleLogger) + enable debug flags selectively (WithDebug /
// WithDebugConfig) for insight without noise.
package apiclient
