package profile

import (
	"context"
	"time"
)

// Profile is the service's own record about a user, stored separately from
// the identity provider's account. ID mirrors the canonical identity id so
// session-token subjects resolve profiles with a primary-key lookup.
type Profile struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Lastname  string    `bson:"lastname"`
	Email     string    `bson:"email"`
	Age       int       `bson:"age"`
	Provider  string    `bson:"provider"`
	CreatedAt time.Time `bson:"created_at"`
}

// Update carries the mutable profile fields. Nil means the field was absent
// from the request. Pointers to zero values (empty string, age <= 0) are
// also skipped: the update contract is lenient and never rejects a body.
type Update struct {
	Name     *string
	Lastname *string
	Email    *string
	Age      *int
}

// Store is the persistence surface the rest of the service depends on.
type Store interface {
	// Create inserts a new profile. A duplicate id returns ErrAlreadyExists.
	Create(ctx context.Context, p Profile) error

	// GetByID returns the profile for an identity id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (Profile, error)

	// GetByEmail returns the profile holding the email, or ErrNotFound.
	GetByEmail(ctx context.Context, email string) (Profile, error)

	// Update applies the non-empty fields and returns the document as
	// stored after the write. Missing profile returns ErrNotFound.
	Update(ctx context.Context, id string, upd Update) (Profile, error)

	// Delete removes the profile. Missing profile returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}
