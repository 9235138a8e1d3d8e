// Package server provides the HTTP front end for computing Collatz
// sequences.
//
// The server exposes the same computation three ways: an HTML form for
// browsers, a JSON API for programmatic clients, and embedded static
// assets supporting the form page. Nothing is persisted; every sequence
// is computed on demand and discarded once written.
//
// # Endpoints
//
//   - GET / - HTML form for entering a starting number
//   - POST / - Compute a sequence from the submitted form value
//   - POST /api/collatz - Compute a sequence from a JSON body
//   - GET /healthz - Liveness check
//   - GET /static/ - Embedded stylesheets and other assets
//
// # Limits
//
// Sequences are truncated after a configurable number of steps and the
// response carries a truncated flag so clients can tell a capped run from
// a converged one. Compute endpoints share a per-client request budget;
// exceeding it returns 429 with a Retry-After header.
//
// Validation errors are returned in the language negotiated from the
// Accept-Language header. English and German are available.
package server
