package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength is the shortest password Register accepts.
	MinPasswordLength = 8
	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72
)

// commonPasswords are rejected regardless of length.
var commonPasswords = []string{
	"password",
	"password1",
	"password123",
	"12345678",
	"123456789",
	"1234567890",
	"qwertyuiop",
	"qwerty123",
	"iloveyou",
	"sunshine",
	"princess",
	"football",
	"baseball",
	"welcome1",
	"admin123",
	"letmein1",
	"abc12345",
	"11111111",
	"00000000",
	"trustno1",
}

// PasswordPolicy validates new passwords.
type PasswordPolicy struct {
	MinLength int
	Common    []string
}

// DefaultPasswordPolicy returns the registration policy.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{MinLength: MinPasswordLength, Common: commonPasswords}
}

// Check returns a descriptive error when pw violates the policy.
func (p PasswordPolicy) Check(pw string) error {
	if len(pw) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters", p.MinLength)
	}
	if len(pw) > MaxPasswordBytes {
		return fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)
	}
	lower := strings.ToLower(pw)
	for _, c := range p.Common {
		if lower == c {
			return errors.New("password is too common")
		}
	}
	if isRepeatedChar(pw) {
		return errors.New("password must not repeat a single character")
	}
	if isAllDigits(pw) {
		return errors.New("password must not be entirely numeric")
	}
	return nil
}

// HashPassword returns the bcrypt hash of pw.
func HashPassword(pw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// CheckPassword reports whether pw matches the bcrypt hash.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

func isRepeatedChar(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return len(s) > 0
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
