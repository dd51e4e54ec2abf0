package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	facebookUserinfoURL = "https://graph.facebook.com/me?fields=id,name,email"
	githubUserinfoURL   = "https://api.github.com/user"
)

// UserinfoVerifier verifies opaque access tokens by presenting them to the
// provider's userinfo endpoint. Providers that do not issue OIDC ID tokens
// (Facebook, GitHub) are covered this way: if the provider accepts the
// token and returns a user, the token is good.
type UserinfoVerifier struct {
	endpoint   string
	httpClient *http.Client
}

// UserinfoOption configures a UserinfoVerifier.
type UserinfoOption func(*UserinfoVerifier)

// WithUserinfoHTTPClient replaces the base HTTP client.
func WithUserinfoHTTPClient(c *http.Client) UserinfoOption {
	return func(v *UserinfoVerifier) {
		if c != nil {
			v.httpClient = c
		}
	}
}

// NewUserinfoVerifier builds a verifier for a userinfo endpoint.
func NewUserinfoVerifier(endpoint string, opts ...UserinfoOption) *UserinfoVerifier {
	v := &UserinfoVerifier{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// NewFacebookVerifier verifies Facebook access tokens via the Graph API.
func NewFacebookVerifier(opts ...UserinfoOption) *UserinfoVerifier {
	return NewUserinfoVerifier(facebookUserinfoURL, opts...)
}

// NewGitHubVerifier verifies GitHub access tokens via the user endpoint.
func NewGitHubVerifier(opts ...UserinfoOption) *UserinfoVerifier {
	return NewUserinfoVerifier(githubUserinfoURL, opts...)
}

type userinfoPayload struct {
	ID    json.Number `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Login string      `json:"login"`
}

// Verify fetches the userinfo document with the token as the credential.
func (v *UserinfoVerifier) Verify(ctx context.Context, token string) (ExternalIdentity, error) {
	if strings.TrimSpace(token) == "" {
		return ExternalIdentity{}, fmt.Errorf("%w: empty token", ErrInvalidExternalToken)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, v.httpClient)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.endpoint, nil)
	if err != nil {
		return ExternalIdentity{}, fmt.Errorf("%w: %v", ErrInvalidExternalToken, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return ExternalIdentity{}, fmt.Errorf("%w: %v", ErrInvalidExternalToken, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return ExternalIdentity{}, fmt.Errorf("%w: userinfo returned status %d", ErrInvalidExternalToken, resp.StatusCode)
	}

	var payload userinfoPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ExternalIdentity{}, fmt.Errorf("%w: %v", ErrInvalidExternalToken, err)
	}
	if payload.ID.String() == "" {
		return ExternalIdentity{}, fmt.Errorf("%w: userinfo missing id", ErrInvalidExternalToken)
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		name = strings.TrimSpace(payload.Login)
	}

	return ExternalIdentity{
		ID:    payload.ID.String(),
		Email: strings.ToLower(strings.TrimSpace(payload.Email)),
		Name:  name,
	}, nil
}
