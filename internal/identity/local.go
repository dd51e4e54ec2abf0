package identity

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type localAccount struct {
	id          string
	email       string
	displayName string
	hash        []byte
	disabled    bool
}

// LocalBackend is an in-process Provider used when no provider API key is
// configured: keyless development runs and the test suite. It keeps real
// bcrypt hashes so the verification path behaves like the managed service.
type LocalBackend struct {
	mu         sync.RWMutex
	byID       map[string]*localAccount
	byEmail    map[string]string
	bcryptCost int
}

// LocalOption configures a LocalBackend.
type LocalOption func(*LocalBackend)

// WithBcryptCost lowers or raises the hashing cost; tests use the minimum.
func WithBcryptCost(cost int) LocalOption {
	return func(b *LocalBackend) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			b.bcryptCost = cost
		}
	}
}

// NewLocalBackend returns an empty in-memory provider.
func NewLocalBackend(opts ...LocalOption) *LocalBackend {
	b := &LocalBackend{
		byID:       make(map[string]*localAccount),
		byEmail:    make(map[string]string),
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *LocalBackend) CreateAccount(ctx context.Context, email, password, displayName string) (Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Account{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.bcryptCost)
	if err != nil {
		return Account{}, ErrInvalidInput
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.byEmail[email]; exists {
		return Account{}, ErrDuplicateEmail
	}

	acc := &localAccount{
		id:          uuid.NewString(),
		email:       email,
		displayName: displayName,
		hash:        hash,
	}
	b.byID[acc.id] = acc
	b.byEmail[email] = acc.id

	return Account{ID: acc.id, Email: acc.email, DisplayName: acc.displayName}, nil
}

func (b *LocalBackend) VerifyPassword(ctx context.Context, email, password string) (Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	b.mu.RLock()
	defer b.mu.RUnlock()

	id, ok := b.byEmail[email]
	if !ok {
		return Account{}, ErrNotFound
	}
	acc := b.byID[id]

	if acc.disabled {
		return Account{}, ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return Account{}, ErrBadCredentials
	}

	return Account{ID: acc.id, Email: acc.email, DisplayName: acc.displayName}, nil
}

func (b *LocalBackend) LookupByEmail(ctx context.Context, email string) (Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	b.mu.RLock()
	defer b.mu.RUnlock()

	id, ok := b.byEmail[email]
	if !ok {
		return Account{}, ErrNotFound
	}
	acc := b.byID[id]

	return Account{ID: acc.id, Email: acc.email, DisplayName: acc.displayName, Disabled: acc.disabled}, nil
}

func (b *LocalBackend) SetDisabled(ctx context.Context, id string, disabled bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	acc, ok := b.byID[id]
	if !ok {
		return ErrNotFound
	}
	acc.disabled = disabled
	return nil
}

func (b *LocalBackend) SetPassword(ctx context.Context, id, newPassword string) error {
	if newPassword == "" {
		return ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), b.bcryptCost)
	if err != nil {
		return ErrInvalidInput
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	acc, ok := b.byID[id]
	if !ok {
		return ErrNotFound
	}
	acc.hash = hash
	return nil
}
