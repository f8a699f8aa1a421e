package auth

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/repository"
)

// dummyHash is compared against when the login is unknown so that both
// failure paths cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() string {
	h, _ := bcrypt.GenerateFromPassword([]byte("prompt-library-unknown-user"), bcrypt.DefaultCost)
	return string(h)
})

// DBProvider authenticates against the users table.
type DBProvider struct {
	users repository.UserRepository
}

// NewDBProvider creates a provider backed by users.
func NewDBProvider(users repository.UserRepository) *DBProvider {
	return &DBProvider{users: users}
}

// Authenticate looks the login up as username, then email, and checks the password hash.
func (p *DBProvider) Authenticate(ctx context.Context, creds Credentials) (*entity.User, error) {
	u, err := p.users.GetByLogin(ctx, creds.Login)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if u == nil {
		CheckPassword(dummyHash(), creds.Password)
		return nil, ErrInvalidCredentials
	}
	if !CheckPassword(u.PasswordHash, creds.Password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Name returns the provider name.
func (p *DBProvider) Name() string {
	return "database"
}
