package identity

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	googleIssuer  = "https://accounts.google.com"
	googleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"
)

// OIDCVerifier validates RS256-signed ID tokens against a provider's JWKS
// document. The key set is fetched per verification; failed fetches and
// failed validations both surface as ErrInvalidExternalToken.
type OIDCVerifier struct {
	issuer     string
	jwksURL    string
	audience   string
	httpClient *http.Client
}

// OIDCOption configures an OIDCVerifier.
type OIDCOption func(*OIDCVerifier)

// WithAudience additionally pins the aud claim. Without it the token's
// audience is not checked; signature, issuer and expiry still are.
func WithAudience(aud string) OIDCOption {
	return func(v *OIDCVerifier) { v.audience = aud }
}

// WithOIDCHTTPClient replaces the JWKS-fetching client.
func WithOIDCHTTPClient(c *http.Client) OIDCOption {
	return func(v *OIDCVerifier) {
		if c != nil {
			v.httpClient = c
		}
	}
}

// NewOIDCVerifier builds a verifier for an issuer and its JWKS endpoint.
func NewOIDCVerifier(issuer, jwksURL string, opts ...OIDCOption) *OIDCVerifier {
	v := &OIDCVerifier{
		issuer:     issuer,
		jwksURL:    jwksURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// NewGoogleVerifier verifies Google-issued ID tokens.
func NewGoogleVerifier(opts ...OIDCOption) *OIDCVerifier {
	return NewOIDCVerifier(googleIssuer, googleJWKSURL, opts...)
}

// Verify checks the ID token and extracts the attested identity.
func (v *OIDCVerifier) Verify(ctx context.Context, raw string) (ExternalIdentity, error) {
	if strings.TrimSpace(raw) == "" {
		return ExternalIdentity{}, fmt.Errorf("%w: empty token", ErrInvalidExternalToken)
	}

	keys, err := v.fetchJWKS(ctx)
	if err != nil {
		return ExternalIdentity{}, fmt.Errorf("%w: %v", ErrInvalidExternalToken, err)
	}

	claims := jwt.MapClaims{}
	parseOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if v.audience != "" {
		parseOpts = append(parseOpts, jwt.WithAudience(v.audience))
	}

	_, err = jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid != "" {
			key, ok := keys[kid]
			if !ok {
				return nil, fmt.Errorf("unknown key id %q", kid)
			}
			return key, nil
		}
		if len(keys) == 1 {
			for _, key := range keys {
				return key, nil
			}
		}
		return nil, fmt.Errorf("token missing key id")
	}, parseOpts...)
	if err != nil {
		return ExternalIdentity{}, fmt.Errorf("%w: %v", ErrInvalidExternalToken, err)
	}

	sub := stringClaim(claims, "sub")
	if sub == "" {
		return ExternalIdentity{}, fmt.Errorf("%w: token missing sub", ErrInvalidExternalToken)
	}

	return ExternalIdentity{
		ID:    sub,
		Email: strings.ToLower(strings.TrimSpace(stringClaim(claims, "email"))),
		Name:  strings.TrimSpace(stringClaim(claims, "name")),
	}, nil
}

type jwksDocument struct {
	Keys []jwk `json:"keys"`
}

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (v *OIDCVerifier) fetchJWKS(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.jwksURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("jwks fetch failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey)
	for i, key := range doc.Keys {
		if !strings.EqualFold(strings.TrimSpace(key.Kty), "RSA") {
			continue
		}
		nBytes, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(key.N))
		if err != nil {
			return nil, fmt.Errorf("decode jwks n: %w", err)
		}
		eBytes, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(key.E))
		if err != nil {
			return nil, fmt.Errorf("decode jwks e: %w", err)
		}
		eBig := new(big.Int).SetBytes(eBytes)
		if !eBig.IsInt64() || eBig.Int64() <= 1 {
			return nil, fmt.Errorf("invalid jwks exponent for key %s", key.Kid)
		}

		kid := strings.TrimSpace(key.Kid)
		if kid == "" {
			kid = fmt.Sprintf("key-%d", i)
		}
		keys[kid] = &rsa.PublicKey{
			N: new(big.Int).SetBytes(nBytes),
			E: int(eBig.Int64()),
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("no RSA keys in jwks document")
	}
	return keys, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
