package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veridia/authgate/internal/gateway"
	"github.com/veridia/authgate/internal/httpserver"
	"github.com/veridia/authgate/internal/i18n"
	"github.com/veridia/authgate/internal/profile"
	"github.com/veridia/authgate/internal/requestid"
	"github.com/veridia/authgate/internal/token"
)

// AuthService is the slice of the auth gateway the handlers drive.
type AuthService interface {
	Register(ctx context.Context, in gateway.RegisterInput) (gateway.Session, error)
	Login(ctx context.Context, in gateway.LoginInput) (gateway.Session, error)
	LoginSocial(ctx context.Context, in gateway.SocialLoginInput) (gateway.Session, error)
	GetProfile(ctx context.Context, identityID string) (profile.Profile, error)
	UpdateProfile(ctx context.Context, identityID string, in gateway.UpdateProfileInput) (profile.Profile, error)
	DeleteMe(ctx context.Context, identityID string) error
	ForgotPassword(ctx context.Context, in gateway.ForgotPasswordInput) error
	ResetPassword(ctx context.Context, in gateway.ResetPasswordInput) error
}

// SessionVerifier checks bearer tokens for the session middleware.
type SessionVerifier interface {
	VerifySession(raw string) (token.Session, error)
}

// DebugInfo is the GET /debug payload: which collaborators are configured,
// reported as presence flags.
type DebugInfo struct {
	Environment               string `json:"environment"`
	IdentityProjectConfigured bool   `json:"identityProjectConfigured"`
	EmailKeyConfigured        bool   `json:"emailKeyConfigured"`
	Port                      string `json:"port"`
}

// Deps carries the collaborators the router serves. Auth, Sessions, and
// Catalog are required; ReadyChecks feed the readiness probe.
type Deps struct {
	Auth        AuthService
	Sessions    SessionVerifier
	Catalog     *i18n.Catalog
	Debug       DebugInfo
	ReadyChecks []func(context.Context) error
}

// Option configures optional router behavior.
type Option func(*routerOptions)

type routerOptions struct {
	logger *slog.Logger
}

// WithLogger supplies the logger for request lines, panics, and 500 detail.
func WithLogger(l *slog.Logger) Option {
	return func(o *routerOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewRouter assembles the HTTP surface: the global middleware chain, the
// route set mounted at both / and /api, the health probes, and localized
// JSON 404/405 handlers.
func NewRouter(cfg Config, deps Deps, opts ...Option) (http.Handler, error) {
	switch {
	case deps.Auth == nil:
		return nil, errors.New("api: auth service is required")
	case deps.Sessions == nil:
		return nil, errors.New("api: session verifier is required")
	case deps.Catalog == nil:
		return nil, errors.New("api: message catalog is required")
	}

	o := &routerOptions{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}

	rs := &responder{catalog: deps.Catalog, logger: o.logger}
	h := &handlers{auth: deps.Auth, respond: rs, debug: deps.Debug}
	requireSession := sessionMiddleware(deps.Sessions, rs)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(i18n.Middleware(deps.Catalog))
	r.Use(requestLogger(o.logger))
	r.Use(recoverer(rs))
	r.Use(corsMiddleware(cfg.FrontendOrigin, rs))

	// Set before mounting /api so the subrouter inherits both handlers.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rs.ErrorKey(r.Context(), w, http.StatusNotFound, "error.route_not_found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		rs.ErrorKey(r.Context(), w, http.StatusMethodNotAllowed, "error.method_not_allowed")
	})

	routes := func(r chi.Router) {
		r.Get("/", h.banner)
		r.Get("/debug", h.debugInfo)

		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/login-social", h.loginSocial)
		r.Post("/forgot-password", h.forgotPassword)
		r.Post("/reset-password", h.resetPassword)

		r.Group(func(r chi.Router) {
			r.Use(requireSession)
			r.Get("/profile", h.getProfile)
			r.Put("/profile", h.updateProfile)
			r.Delete("/profile", h.deleteProfile)
		})
	}

	routes(r)
	r.Route("/api", routes)

	// Infra probes stay off the /api mount.
	r.Get("/healthz", httpserver.HealthHandler(o.logger))
	r.Get("/readyz", httpserver.HealthHandler(o.logger, deps.ReadyChecks...))

	return r, nil
}
