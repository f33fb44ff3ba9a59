package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/expenses/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// PersonIDKey is the context key for the authenticated person's id.
	PersonIDKey contextKey = "person_id"
	// LoginKey is the context key for the authenticated person's login.
	LoginKey contextKey = "login"
)

// GetPersonID extracts the authenticated person id from the context.
// Returns 0 if not found.
func GetPersonID(ctx context.Context) int64 {
	id, _ := ctx.Value(PersonIDKey).(int64)
	return id
}

// GetLogin extracts the authenticated login from the context.
// Returns empty string if not found.
func GetLogin(ctx context.Context) string {
	login, _ := ctx.Value(LoginKey).(string)
	return login
}

// WithPerson returns a copy of ctx carrying the given identity.
func WithPerson(ctx context.Context, personID int64, login string) context.Context {
	ctx = context.WithValue(ctx, PersonIDKey, personID)
	return context.WithValue(ctx, LoginKey, login)
}

// bearerToken returns the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || token == "" {
		return "", false
	}
	return token, true
}

// RequireAuth returns a middleware that validates JWT tokens and requires authentication.
// The person id and login from the token are added to the request context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			token, ok := bearerToken(authHeader)
			if !ok {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(token)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithPerson(ctx, claims.PersonID, claims.Login), req)
		}
	}
}

// OptionalAuth returns a middleware that validates JWT tokens if present, but allows
// requests without authentication.
func OptionalAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if token, ok := bearerToken(req.Header().Get("Authorization")); ok {
				// invalid tokens are ignored here
				if claims, err := jwtManager.Validate(token); err == nil {
					ctx = WithPerson(ctx, claims.PersonID, claims.Login)
				}
			}
			return next(ctx, req)
		}
	}
}
