package identity

import "context"

// Account is the normalized view of an identity-provider account. The
// provider owns the credential; this service never stores or compares
// password material in production paths.
type Account struct {
	ID          string
	Email       string
	DisplayName string
	Disabled    bool
}

// Provider abstracts the external identity service. Implementations map
// provider-specific failures onto this package's sentinel errors so callers
// branch with errors.Is only.
type Provider interface {
	// CreateAccount provisions a password account and returns its id.
	CreateAccount(ctx context.Context, email, password, displayName string) (Account, error)

	// VerifyPassword checks the credential with the provider. A disabled
	// account surfaces as ErrAccountDisabled, an unknown email as
	// ErrNotFound, a wrong password as ErrBadCredentials.
	VerifyPassword(ctx context.Context, email, password string) (Account, error)

	// LookupByEmail resolves an account without checking credentials.
	LookupByEmail(ctx context.Context, email string) (Account, error)

	// SetDisabled marks the account active or inactive. Idempotent.
	SetDisabled(ctx context.Context, id string, disabled bool) error

	// SetPassword overwrites the account credential.
	SetPassword(ctx context.Context, id, newPassword string) error
}

// ExternalIdentity is the result of verifying a token issued by a social
// identity provider.
type ExternalIdentity struct {
	ID    string
	Email string
	Name  string
}

// SocialVerifier verifies a provider-issued credential token and returns
// the identity it attests.
type SocialVerifier interface {
	Verify(ctx context.Context, token string) (ExternalIdentity, error)
}
