package identity

import (
	"context"
	"fmt"
	"strings"
)

// Social provider tags accepted on the social login endpoint.
const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
	ProviderGitHub   = "github"
)

// Registry routes social token verification to the verifier registered for
// the claimed provider tag.
type Registry struct {
	verifiers map[string]SocialVerifier
}

// NewRegistry returns a registry with the default verifier set: Google by
// ID token, Facebook and GitHub by userinfo fetch.
func NewRegistry() *Registry {
	r := &Registry{verifiers: make(map[string]SocialVerifier)}
	r.Register(ProviderGoogle, NewGoogleVerifier())
	r.Register(ProviderFacebook, NewFacebookVerifier())
	r.Register(ProviderGitHub, NewGitHubVerifier())
	return r
}

// NewEmptyRegistry returns a registry with no verifiers; tests register
// their own.
func NewEmptyRegistry() *Registry {
	return &Registry{verifiers: make(map[string]SocialVerifier)}
}

// Register binds a verifier to a provider tag, replacing any previous one.
func (r *Registry) Register(provider string, v SocialVerifier) {
	if v == nil {
		return
	}
	r.verifiers[normalizeProvider(provider)] = v
}

// Verify dispatches to the provider's verifier.
func (r *Registry) Verify(ctx context.Context, provider, token string) (ExternalIdentity, error) {
	v, ok := r.verifiers[normalizeProvider(provider)]
	if !ok {
		return ExternalIdentity{}, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
	return v.Verify(ctx, token)
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}
