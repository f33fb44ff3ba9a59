package auth

import (
	"context"

	"github.com/mmynk/expenses/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// Credentials are bound to Person login names held by the entity store.
type Authenticator interface {
	// Register binds a credential to the person owning login.
	// The person must already exist in the store.
	Register(ctx context.Context, login, credential string) (*models.Person, error)

	// Authenticate verifies the credential for login and returns the person.
	Authenticate(ctx context.Context, login, credential string) (*models.Person, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
