package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"prompt-library/internal/domain/entity"
)

const uniqueViolation = "23505"

// uniqueConstraint returns the violated constraint name when err is a unique
// violation reported by Postgres.
func uniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// wrapWrite prefixes err with op and translates unique violations into the
// domain sentinels.
func wrapWrite(op string, err error) error {
	if constraint, ok := uniqueConstraint(err); ok {
		switch {
		case strings.HasSuffix(constraint, "slug_key"):
			return fmt.Errorf("%s: %w", op, entity.ErrDuplicateSlug)
		case constraint == "categories_kind_name_key":
			return fmt.Errorf("%s: %w", op, entity.ErrDuplicateName)
		case strings.HasPrefix(constraint, "users_"):
			return fmt.Errorf("%s: %w", op, entity.ErrDuplicateUser)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
