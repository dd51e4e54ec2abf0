// Package identity talks to the external identity provider that owns account
// credentials. The service never stores passwords; it forwards them here and
// keeps only the provider-assigned account ID.
//
// # Backends
//
// Two Provider implementations are available:
//   - Client calls the provider's REST API. Public operations (sign-up,
//     password sign-in) authenticate with the project API key; privileged
//     operations (lookup, disable, password set) additionally send the
//     service credentials as a bearer token.
//   - LocalBackend keeps accounts in memory with bcrypt password hashes.
//     It backs development runs and tests where no provider is configured.
//
// Both return the same sentinel errors (ErrDuplicateEmail, ErrBadCredentials,
// ErrAccountDisabled, ...) so callers never branch on backend.
//
// # Social sign-in
//
// A Registry maps provider tags to SocialVerifier implementations:
//   - google: OIDC ID tokens checked against Google's published JWKS.
//   - facebook, github: opaque access tokens presented to the provider's
//     userinfo endpoint.
//
// Verification yields an ExternalIdentity (stable subject, email, display
// name) that the caller links to a provider account.
package identity
