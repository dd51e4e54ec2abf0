package api

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/veridia/authgate/internal/logger"
)

// devOrigins are always allowed alongside the configured frontend origin,
// so local frontends work without touching the environment.
var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
}

// corsMiddleware enforces the origin allow-list before any route runs.
// Requests without an Origin header pass untouched (server-to-server
// callers send none); allowed origins are echoed back with credentials
// enabled; anything else is rejected with a localized 403. The wildcard is
// never used because responses carry credentials.
func corsMiddleware(frontendOrigin string, rs *responder) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(devOrigins)+1)
	for _, origin := range devOrigins {
		allowed[origin] = struct{}{}
	}
	if o := strings.TrimRight(strings.TrimSpace(frontendOrigin), "/"); o != "" {
		allowed[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if _, ok := allowed[strings.TrimRight(origin, "/")]; !ok {
				rs.ErrorKey(r.Context(), w, http.StatusForbidden, "error.origin_forbidden")
				return
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept-Language, X-Request-ID")
			h.Set("Access-Control-Max-Age", "86400")
			h.Add("Vary", "Origin")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

var errNoBearerToken = errors.New("api: missing bearer token")

// bearerToken extracts the credential from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errNoBearerToken
	}

	scheme, rest, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", errNoBearerToken
	}

	raw := strings.TrimSpace(rest)
	if raw == "" {
		return "", errNoBearerToken
	}
	return raw, nil
}

// sessionMiddleware verifies the bearer token and attaches the decoded
// session to the request context. Missing, malformed, expired, and
// wrong-kind tokens are the same 401 to the client; the cause is logged.
func sessionMiddleware(verifier SessionVerifier, rs *responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := bearerToken(r)
			if err != nil {
				rs.ErrorKey(r.Context(), w, http.StatusUnauthorized, "error.unauthenticated")
				return
			}

			sess, err := verifier.VerifySession(raw)
			if err != nil {
				rs.logger.DebugContext(r.Context(), "session token rejected", logger.Error(err))
				rs.ErrorKey(r.Context(), w, http.StatusUnauthorized, "error.unauthenticated")
				return
			}

			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), sess)))
		})
	}
}

// statusRecorder captures the status and size for the request log line.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

// requestLogger emits one line per request, level keyed to the status.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}

			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Int("bytes", rec.bytes),
				logger.Duration(time.Since(start)),
			}
			switch {
			case rec.status >= http.StatusInternalServerError:
				log.ErrorContext(r.Context(), "request completed", attrs...)
			case rec.status >= http.StatusBadRequest:
				log.WarnContext(r.Context(), "request completed", attrs...)
			default:
				log.InfoContext(r.Context(), "request completed", attrs...)
			}
		})
	}
}

// recoverer converts panics into logged 500s so no request crashes the
// process or hangs the connection. http.ErrAbortHandler keeps its contract
// and is re-panicked.
func recoverer(rs *responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
						panic(rec)
					}
					rs.logger.ErrorContext(r.Context(), "panic recovered",
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
					)
					rs.ErrorKey(r.Context(), w, http.StatusInternalServerError, "error.unexpected")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
