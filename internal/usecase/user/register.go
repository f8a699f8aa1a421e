package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/observability/logging"
	"prompt-library/internal/observability/metrics"
	"prompt-library/internal/service/auth"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9@.+_-]+$`)

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// Validate checks the form fields in the order they are shown.
func (in RegisterInput) Validate(policy auth.PasswordPolicy) error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Username,
			validation.Required,
			validation.RuneLength(1, 150),
			validation.Match(usernamePattern).Error("may contain only letters, digits and @/./+/-/_"),
		),
		validation.Field(&in.Email, validation.Required, validation.Length(3, 254), is.EmailFormat),
		validation.Field(&in.Password,
			validation.Required,
			validation.By(func(any) error { return policy.Check(in.Password) }),
		),
		validation.Field(&in.PasswordConfirm,
			validation.Required,
			validation.By(func(any) error {
				if in.PasswordConfirm != in.Password {
					return errors.New("passwords do not match")
				}
				return nil
			}),
		),
	)
	return entity.FromValidation(err, "username", "email", "password", "password_confirm")
}

// Register creates the user and its profile in one transaction.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := in.Validate(s.policy()); err != nil {
		metrics.RecordRegistration("invalid")
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		metrics.RecordRegistration("error")
		return nil, err
	}
	u := &entity.User{Username: in.Username, Email: in.Email, PasswordHash: hash}
	if err := s.Users.CreateWithProfile(ctx, u, entity.NewProfile(0)); err != nil {
		result := "error"
		if errors.Is(err, entity.ErrDuplicateUser) {
			result = "duplicate"
		}
		metrics.RecordRegistration(result)
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.RecordRegistration("success")
	logging.FromContext(ctx).Info("user registered",
		slog.Int64("user_id", u.ID),
		slog.String("username", u.Username))
	return u, nil
}

// Authenticate resolves a username or email and password to a user. Unknown
// logins and wrong passwords both yield auth.ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, login, password string) (*entity.User, error) {
	return auth.NewDBProvider(s.Users).Authenticate(ctx, auth.Credentials{
		Login:    strings.TrimSpace(login),
		Password: password,
	})
}
