// Package api wires the HTTP surface: routing, CORS, session auth,
// request-scoped logging, and the mapping from service errors to localized
// JSON responses. The route set is mounted at both / and /api so older
// clients keep working.
package api
