package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/veridia/authgate/internal/binder"
	"github.com/veridia/authgate/internal/gateway"
	"github.com/veridia/authgate/internal/i18n"
	"github.com/veridia/authgate/internal/logger"
	"github.com/veridia/authgate/internal/validator"
)

// responder writes the JSON bodies and owns the one place where service
// errors become HTTP statuses. Clients get a status and a localized message;
// everything else about a failure stays in the log.
type responder struct {
	catalog *i18n.Catalog
	logger  *slog.Logger
}

// t resolves a catalog key in the request's negotiated language.
func (rs *responder) t(ctx context.Context, key string) string {
	return rs.catalog.T(i18n.LanguageFromContext(ctx), key)
}

// JSON writes v with the status code.
func (rs *responder) JSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		rs.logger.ErrorContext(ctx, "failed to encode response body", logger.Error(err))
	}
}

// Message writes {"message": <localized key>}.
func (rs *responder) Message(ctx context.Context, w http.ResponseWriter, status int, key string) {
	rs.JSON(ctx, w, status, messageEnvelope{Message: rs.t(ctx, key)})
}

// ErrorKey writes {"error": <localized key>} for failures whose status is
// already decided, such as middleware rejections.
func (rs *responder) ErrorKey(ctx context.Context, w http.ResponseWriter, status int, key string) {
	rs.JSON(ctx, w, status, errorEnvelope{Error: rs.t(ctx, key)})
}

// Error classifies err, logs what the client will not see, and writes the
// localized error body.
func (rs *responder) Error(ctx context.Context, w http.ResponseWriter, err error) {
	status, key := classify(err)
	if status >= http.StatusInternalServerError {
		rs.logger.ErrorContext(ctx, "request failed", logger.Error(err))
	}
	rs.ErrorKey(ctx, w, status, key)
}

// classify maps an error chain onto a status and catalog key. Anything
// unrecognized lands in the 500 bucket; its detail is logged, never
// returned.
func classify(err error) (status int, key string) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return http.StatusBadRequest, ve.First().MessageKey
	}

	switch {
	case errors.Is(err, binder.ErrInvalidJSON),
		errors.Is(err, binder.ErrUnsupportedMediaType),
		errors.Is(err, gateway.ErrInvalidInput):
		return http.StatusBadRequest, "error.invalid_input"
	case errors.Is(err, gateway.ErrUnknownProvider):
		return http.StatusBadRequest, "error.unknown_provider"
	case errors.Is(err, gateway.ErrResetToken):
		return http.StatusBadRequest, "error.reset_token"
	case errors.Is(err, gateway.ErrUnauthorized):
		return http.StatusUnauthorized, "error.bad_credentials"
	case errors.Is(err, gateway.ErrExternalToken):
		return http.StatusUnauthorized, "error.social_token"
	case errors.Is(err, gateway.ErrDisabled):
		return http.StatusForbidden, "error.disabled"
	case errors.Is(err, gateway.ErrMethodDisabled):
		return http.StatusForbidden, "error.method_disabled"
	case errors.Is(err, gateway.ErrNotFound):
		return http.StatusNotFound, "error.not_found"
	case errors.Is(err, gateway.ErrDuplicateEmail):
		return http.StatusConflict, "error.conflict"
	default:
		return http.StatusInternalServerError, "error.unexpected"
	}
}
