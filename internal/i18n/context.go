package i18n

import (
	"context"
	"net/http"
)

type contextKey struct{}

// WithLanguage returns a context carrying the negotiated language.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, contextKey{}, lang)
}

// LanguageFromContext returns the negotiated language, or DefaultLanguage
// when the middleware did not run.
func LanguageFromContext(ctx context.Context) string {
	if ctx != nil {
		if lang, ok := ctx.Value(contextKey{}).(string); ok && lang != "" {
			return lang
		}
	}
	return DefaultLanguage
}

// Middleware negotiates the response language from Accept-Language once per
// request and stores it in the context.
func Middleware(catalog *Catalog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := catalog.Negotiate(r.Header.Get("Accept-Language"))
			next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), lang)))
		})
	}
}
