// Package auth holds the framework independent authentication logic:
// credential checks against the user store, password hashing and policy,
// and issuing and parsing access tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"prompt-library/internal/domain/entity"
)

// ErrInvalidCredentials is returned for an unknown login or a wrong password.
// Callers cannot tell the two cases apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials represents authentication credentials. Login is a username or an email.
type Credentials struct {
	Login    string
	Password string
}

// AuthProvider defines the interface for authentication providers.
type AuthProvider interface {
	// Authenticate returns the user the credentials belong to or ErrInvalidCredentials.
	Authenticate(ctx context.Context, creds Credentials) (*entity.User, error)

	// Name returns the name of this provider.
	Name() string
}

// AuthService handles authentication business logic.
// This service is framework-agnostic and can be used with any HTTP framework or CLI.
type AuthService struct {
	provider AuthProvider
	tokens   *Tokens
}

// NewAuthService creates a new authentication service.
func NewAuthService(provider AuthProvider, tokens *Tokens) *AuthService {
	return &AuthService{
		provider: provider,
		tokens:   tokens,
	}
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// Login checks creds and issues an access token.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (*Session, error) {
	creds.Login = strings.TrimSpace(creds.Login)
	if creds.Login == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.provider.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}

	token, exp, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Token: token, ExpiresAt: exp, User: user}, nil
}

// Tokens returns the token issuer used by the service.
func (s *AuthService) Tokens() *Tokens {
	return s.tokens
}

// GetProvider returns the current authentication provider.
func (s *AuthService) GetProvider() AuthProvider {
	return s.provider
}
