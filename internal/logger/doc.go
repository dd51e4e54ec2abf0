// Package logger builds configured slog.Logger instances for the service.
//
// The factory supports text and JSON handlers, environment presets, static
// attributes, and context extractors that copy request-scoped values (such
// as the request ID) onto every log record emitted with a context.
package logger
