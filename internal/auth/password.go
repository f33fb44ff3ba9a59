package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/expenses/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrLoginRegistered    = errors.New("login already registered")
	ErrUnknownLogin       = errors.New("no person with that login")
)

// PersonDirectory resolves login names to persons.
// memory.Store satisfies it through its person-by-login index.
type PersonDirectory interface {
	FindPersonByLogin(ctx context.Context, login string) (*models.Person, error)
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
// Hashes live in memory for the life of the process, like the store itself.
// They are keyed by person id, so a credential follows its person across
// login renames and never passes to the next holder of a released login.
type PasswordAuthenticator struct {
	persons PersonDirectory
	cost    int

	mu     sync.RWMutex
	hashes map[int64][]byte
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(persons PersonDirectory) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		persons: persons,
		cost:    bcrypt.DefaultCost,
		hashes:  make(map[int64][]byte),
	}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register hashes the password and binds it to the person currently
// holding login.
func (a *PasswordAuthenticator) Register(ctx context.Context, login, credential string) (*models.Person, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	person, err := a.persons.FindPersonByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownLogin, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.hashes[*person.ID]; exists {
		return nil, ErrLoginRegistered
	}
	a.hashes[*person.ID] = hash

	return person, nil
}

// Authenticate verifies the login and password, returning the person if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, login, credential string) (*models.Person, error) {
	person, err := a.persons.FindPersonByLogin(ctx, login)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	a.mu.RLock()
	hash, ok := a.hashes[*person.ID]
	a.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return person, nil
}
