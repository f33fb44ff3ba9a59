package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/expenses/internal/auth"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Register sets a password for an existing person's login.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	s.logger.InfoContext(ctx, "Register request", "login", req.Msg.Login)

	person, err := s.authenticator.Register(ctx, req.Msg.Login, req.Msg.Password)
	if err != nil {
		s.logger.WarnContext(ctx, "Registration failed", "login", req.Msg.Login, "error", err)
		switch {
		case errors.Is(err, auth.ErrLoginRegistered):
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		case errors.Is(err, auth.ErrUnknownLogin):
			return nil, connect.NewError(connect.CodeNotFound, err)
		case errors.Is(err, auth.ErrWeakPassword):
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.jwtManager.Generate(person)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to generate token", "login", req.Msg.Login, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.InfoContext(ctx, "Person registered successfully", "person_id", *person.ID, "login", req.Msg.Login)
	return connect.NewResponse(&RegisterResponse{
		Person: ToRecord(person),
		Token:  token,
	}), nil
}

// Login authenticates a person and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	s.logger.InfoContext(ctx, "Login request", "login", req.Msg.Login)

	person, err := s.authenticator.Authenticate(ctx, req.Msg.Login, req.Msg.Password)
	if err != nil {
		s.logger.WarnContext(ctx, "Login failed", "login", req.Msg.Login, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, err := s.jwtManager.Generate(person)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to generate token", "person_id", *person.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.InfoContext(ctx, "Person logged in successfully", "person_id", *person.ID, "login", req.Msg.Login)
	return connect.NewResponse(&LoginResponse{
		Person: ToRecord(person),
		Token:  token,
	}), nil
}
