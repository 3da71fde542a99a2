package repository

import (
	"context"
	"errors"

	"clinic-booking-api/internal/domain/user"
	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/infra/db"
	"clinic-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const findUserByUsernameSQL = `
SELECT id, username, full_name, role, is_active, password_hash
FROM users
WHERE username = $1`

func (r *UserRepository) FindByUsername(ctx context.Context, username user.Username) (*queries.AuthorizedUserView, string, error) {
	var (
		view queries.AuthorizedUserView
		hash string
	)
	err := r.db.QueryRow(ctx, findUserByUsernameSQL, username.Value()).
		Scan(&view.ID, &view.Username, &view.FullName, &view.Role, &view.IsActive, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by username", err)
	}

	return &view, hash, nil
}

const findUserByIDSQL = `
SELECT id, username, full_name, role, is_active
FROM users
WHERE id = $1`

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var view queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, findUserByIDSQL, id).
		Scan(&view.ID, &view.Username, &view.FullName, &view.Role, &view.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return &view, nil
}

const updateLastLoginSQL = `
UPDATE users SET last_login = now() WHERE id = $1`

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, updateLastLoginSQL, userID); err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	return nil
}
