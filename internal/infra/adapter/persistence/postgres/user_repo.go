package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/infra/db"
	"prompt-library/internal/repository"
)

type UserRepo struct{ db *sql.DB }

// NewUserRepo takes the pool itself because registration needs a transaction.
func NewUserRepo(db *sql.DB) repository.UserRepository {
	return &UserRepo{db: db}
}

const userColumns = `id, username, email, password_hash, is_staff, created_at`

func scanUser(s scanner) (*entity.User, error) {
	var u entity.User
	if err := s.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsStaff, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (repo *UserRepo) get(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	u, err := scanUser(repo.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func (repo *UserRepo) Get(ctx context.Context, id int64) (*entity.User, error) {
	return repo.get(ctx, "Get", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (repo *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return repo.get(ctx, "GetByUsername", `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (repo *UserRepo) GetByLogin(ctx context.Context, login string) (*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE username = $1 OR LOWER(email) = LOWER($1)
ORDER BY (username = $1) DESC
LIMIT 1`
	return repo.get(ctx, "GetByLogin", query, login)
}

func (repo *UserRepo) CreateWithProfile(ctx context.Context, u *entity.User, p *entity.Profile) error {
	return db.WithTx(ctx, repo.db, func(tx *sql.Tx) error {
		const insertUser = `
INSERT INTO users (username, email, password_hash, is_staff)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`
		if err := tx.QueryRowContext(ctx, insertUser, u.Username, u.Email, u.PasswordHash, u.IsStaff).
			Scan(&u.ID, &u.CreatedAt); err != nil {
			return wrapWrite("CreateWithProfile", err)
		}

		p.UserID = u.ID
		const insertProfile = `
INSERT INTO user_profiles (user_id, bio, avatar_url, website, location, theme, language)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at, updated_at`
		if err := tx.QueryRowContext(ctx, insertProfile,
			p.UserID, p.Bio, p.AvatarURL, p.Website, p.Location, p.Theme, p.Language,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return fmt.Errorf("CreateWithProfile: profile: %w", err)
		}
		return nil
	})
}

func (repo *UserRepo) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ListIDs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids := make([]int64, 0, 64)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ListIDs: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
