package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/expenses/internal/models"
	"github.com/mmynk/expenses/internal/storage"
	"github.com/mmynk/expenses/internal/storage/memory"
)

func newDirectory(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	_, err := store.Write(context.Background(), &models.Person{
		UserName:    models.String("abc"),
		DisplayName: models.String("Able"),
	})
	if err != nil {
		t.Fatalf("failed to seed person: %v", err)
	}
	return store
}

func newTestAuthenticator(t *testing.T) *PasswordAuthenticator {
	a := NewPasswordAuthenticator(newDirectory(t))
	a.cost = bcrypt.MinCost
	return a
}

func TestRegisterAndAuthenticate(t *testing.T) {
	a := newTestAuthenticator(t)
	ctx := context.Background()

	person, err := a.Register(ctx, "abc", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if *person.DisplayName != "Able" {
		t.Errorf("display name: expected 'Able', got '%s'", *person.DisplayName)
	}

	got, err := a.Authenticate(ctx, "abc", "correct horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if *got.ID != *person.ID {
		t.Errorf("person id: expected %d, got %d", *person.ID, *got.ID)
	}
}

func TestRegisterErrors(t *testing.T) {
	a := newTestAuthenticator(t)
	ctx := context.Background()

	if _, err := a.Register(ctx, "abc", "first password"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name     string
		login    string
		password string
		wantErr  error
	}{
		{"weak password", "abc", "short", ErrWeakPassword},
		{"unknown login", "nobody", "long enough", ErrUnknownLogin},
		{"already registered", "abc", "second password", ErrLoginRegistered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Register(ctx, tt.login, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	a := newTestAuthenticator(t)
	ctx := context.Background()
	a.Register(ctx, "abc", "correct horse")

	if _, err := a.Authenticate(ctx, "abc", "wrong horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := a.Authenticate(ctx, "xyz", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown login: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginCannotBeClaimedBySecondPerson(t *testing.T) {
	store := newDirectory(t)
	a := NewPasswordAuthenticator(store)
	a.cost = bcrypt.MinCost
	ctx := context.Background()

	able, err := a.Register(ctx, "abc", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := store.Write(ctx, &models.Person{UserName: models.String("abc")}); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("second person with login abc: expected ErrDuplicateKey, got %v", err)
	}

	got, err := a.Authenticate(ctx, "abc", "correct horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if *got.ID != *able.ID {
		t.Errorf("authenticated as %d, expected %d", *got.ID, *able.ID)
	}
}

func TestCredentialFollowsPersonAcrossRename(t *testing.T) {
	store := newDirectory(t)
	a := NewPasswordAuthenticator(store)
	a.cost = bcrypt.MinCost
	ctx := context.Background()

	able, err := a.Register(ctx, "abc", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	edit := models.EditOf(able)
	edit.UserName = models.String("able")
	if _, err := store.Write(ctx, edit); err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	got, err := a.Authenticate(ctx, "able", "correct horse")
	if err != nil {
		t.Fatalf("Authenticate under new login failed: %v", err)
	}
	if *got.ID != *able.ID {
		t.Errorf("authenticated as %d, expected %d", *got.ID, *able.ID)
	}
	if _, err := a.Authenticate(ctx, "abc", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old login: expected ErrInvalidCredentials, got %v", err)
	}

	// the next holder of the old login starts without a credential
	next, err := storage.WriteAs(ctx, store, &models.Person{UserName: models.String("abc")})
	if err != nil {
		t.Fatalf("create next holder failed: %v", err)
	}
	if _, err := a.Authenticate(ctx, "abc", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("next holder inherited the credential: %v", err)
	}
	if _, err := a.Register(ctx, "abc", "another password"); err != nil {
		t.Fatalf("next holder Register failed: %v", err)
	}
	got, err = a.Authenticate(ctx, "abc", "another password")
	if err != nil {
		t.Fatalf("next holder Authenticate failed: %v", err)
	}
	if *got.ID != *next.ID {
		t.Errorf("authenticated as %d, expected %d", *got.ID, *next.ID)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	store := newDirectory(t)
	person, err := store.FindPersonByLogin(context.Background(), "abc")
	if err != nil {
		t.Fatalf("FindPersonByLogin failed: %v", err)
	}

	m := NewJWTManager("test-secret", time.Hour)
	token, err := m.Generate(person)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.PersonID != *person.ID || claims.Login != "abc" {
		t.Errorf("claims: got %d/%s", claims.PersonID, claims.Login)
	}
}

func TestJWTRejects(t *testing.T) {
	person, _ := storage.ReadAs(context.Background(), newDirectory(t), models.Ref[models.Person](1))

	expired, _ := NewJWTManager("test-secret", -time.Minute).Generate(person)
	foreign, _ := NewJWTManager("other-secret", time.Hour).Generate(person)

	m := NewJWTManager("test-secret", time.Hour)
	for name, token := range map[string]string{
		"expired":        expired,
		"wrong secret":   foreign,
		"garbage":        "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}

	if _, err := m.Generate(&models.Person{}); err == nil {
		t.Error("expected error issuing a token for an unsaved person")
	}
}
