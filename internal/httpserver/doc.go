// Package httpserver wraps net/http with environment-driven configuration,
// graceful shutdown on SIGINT/SIGTERM or context cancellation, and
// liveness/readiness handlers.
package httpserver
