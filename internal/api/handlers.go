package api

import (
	"net/http"

	"github.com/veridia/authgate/internal/binder"
	"github.com/veridia/authgate/internal/gateway"
)

// handlers binds the route surface to the auth gateway. Each handler is one
// pass: bind the body, call the gateway, shape the response; every failure
// goes through the responder so status mapping lives in one place.
type handlers struct {
	auth    AuthService
	respond *responder
	debug   DebugInfo
}

// banner answers the unauthenticated root probe with a localized line.
func (h *handlers) banner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(h.respond.t(r.Context(), "service.banner")))
}

// debugInfo reports which external collaborators are configured. Presence
// flags only, never values.
func (h *handlers) debugInfo(w http.ResponseWriter, r *http.Request) {
	h.respond.JSON(r.Context(), w, http.StatusOK, h.debug)
}

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	var in gateway.RegisterInput
	if err := binder.JSON(r, &in); err != nil {
		h.respond.Error(r.Context(), w, err)
		return
	}

	sess, err := h.auth.Register(r.Context(), in)
	if err != nil {
		h.respond.Error(r.Context(), w, err)
		return
	}

	h.respond.JSON(r.Context(), w, http.StatusCreated, sessionEnvelope{
		Message: h.respond.t(r.Context(), "register.success"),
		Token:   sess.Token,
		User:    newProfilePayload(sess.Profile),
	})
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var in gateway.LoginInput
	if err := binder.JSON(r, &in); err != nil {
		h.respond.Error(r.Context(), w, err)
		return
	}

	sess, err := h.auth.Login(r.Context(), in)
	if err != nil {
		h.respond.Error(r.Context(), w, err)
		return
	}

	h.respond.JSON(r.Context(), w, http.StatusOK, sessionEnvelope{
		Message: h.respond.t(r.Context(), "login.success"),
		Token:   sess.Token,
		User:    newProfilePayload(sess.Profile),
	})
}

func (h *handlers) loginSocial(w http.ResponseWriter, r *http.Request) {
	var in gateway.SocialLoginInput
	if err := binder.JSON(r, &in); err != nil {
		h.respond.Error(r.Context(), w, err)
		return
	}

	sess, err := h.auth.LoginSocial(r.Context(), in)
	if err != nil {
		h.respond.Error(r.Context(), w, err)
		return
	}

	h.respond.JSON(r.Context(), w, http.StatusOK, sessionEnvelope{
		Message: h.respond.t(r.Context(), "social.success"),
		Token:   sess.Token,
		User:    newProfilePayload(sess.Profile),
	})
}

func (h *handlers) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var in gateway.ForgotPasswordInput
	if err := binder.JSON(r, &in); err != nil {
		h.respond.Error(r.Context(), w, err)
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), in); err != nil {
		h.respond.Error(r.Context(), w, err)
		return
	}

	h.respond.Message(r.Context(), w, http.StatusOK, "forgot.sent")
}

func (h *handlers) resetPassword(w http.ResponseWriter, r *http.Request) {
	var in gateway.ResetPasswordInput
	if err := binder.JSON(r, &in); err != nil {
		h.respond.Error(r.Context(), w, err)
		return
	}

	if err := h.auth.ResetPassword(r.Context(), in); err != nil {
		h.respond.Error(r.Context(), w, err)
		return
	}

	h.respond.Message(r.Context(), w, http.StatusOK, "reset.success")
}

func (h *handlers) getProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		h.respond.ErrorKey(r.Context(), w, http.StatusUnauthorized, "error.unauthenticated")
		return
	}

	prof, err := h.auth.GetProfile(r.Context(), sess.IdentityID)
	if err != nil {
		h.respond.Error(r.Context(), w, err)
		return
	}

	h.respond.JSON(r.Context(), w, http.StatusOK, profileEnvelope{
		User: newProfilePayload(prof),
	})
}

func (h *handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		h.respond.ErrorKey(r.Context(), w, http.StatusUnauthorized, "error.unauthenticated")
		return
	}

	var in gateway.UpdateProfileInput
	if err := binder.JSON(r, &in); err != nil {
		h.respond.Error(r.Context(), w, err)
		return
	}

	prof, err := h.auth.UpdateProfile(r.Context(), sess.IdentityID, in)
	if err != nil {
		h.respond.Error(r.Context(), w, err)
		return
	}

	h.respond.JSON(r.Context(), w, http.StatusOK, profileEnvelope{
		Message: h.respond.t(r.Context(), "profile.updated"),
		User:    newProfilePayload(prof),
	})
}

func (h *handlers) deleteProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		h.respond.ErrorKey(r.Context(), w, http.StatusUnauthorized, "error.unauthenticated")
		return
	}

	if err := h.auth.DeleteMe(r.Context(), sess.IdentityID); err != nil {
		h.respond.Error(r.Context(), w, err)
		return
	}

	h.respond.Message(r.Context(), w, http.StatusOK, "profile.deleted")
}
