//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-booking-api/internal/domain/auth"
	"clinic-booking-api/internal/domain/user"
	"clinic-booking-api/internal/pkg/jwt"
	"clinic-booking-api/internal/pkg/password"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	view      *queries.AuthorizedUserView
	hash      string
	err       error
	lastLogin []uuid.UUID
}

func (f *fakeUserRepo) FindByUsername(context.Context, user.Username) (*queries.AuthorizedUserView, string, error) {
	return f.view, f.hash, f.err
}

func (f *fakeUserRepo) FindByID(context.Context, uuid.UUID) (*queries.AuthorizedUserView, error) {
	return f.view, f.err
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID) error {
	f.lastLogin = append(f.lastLogin, id)
	return nil
}

func mustCredentials(t *testing.T, username, pass string) auth.Credentials {
	t.Helper()
	credentials, err := auth.NewCredentials(username, pass)
	require.NoError(t, err)
	return credentials
}

func adminView(t *testing.T, plainPassword string) (*queries.AuthorizedUserView, string) {
	t.Helper()
	hash, err := password.HashPassword(plainPassword)
	require.NoError(t, err)
	return &queries.AuthorizedUserView{
		ID:       uuid.New(),
		Username: "admin",
		FullName: "Administrator",
		Role:     "admin",
		IsActive: true,
	}, hash
}

func newAuthUseCase(repo *fakeUserRepo) usecase.AuthUseCase {
	return usecase.NewAuthUseCase(repo, jwt.NewService("unit-test-secret-unit-test-secret!!!", time.Hour))
}

func TestLoginSuccess(t *testing.T) {
	view, hash := adminView(t, "secret-password")
	repo := &fakeUserRepo{view: view, hash: hash}
	uc := newAuthUseCase(repo)

	token, got, err := uc.Login(context.Background(), mustCredentials(t, "admin", "secret-password"))
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, view, got)
	assert.Equal(t, []uuid.UUID{view.ID}, repo.lastLogin)
}

func TestLoginWrongPassword(t *testing.T) {
	view, hash := adminView(t, "secret-password")
	uc := newAuthUseCase(&fakeUserRepo{view: view, hash: hash})

	_, _, err := uc.Login(context.Background(), mustCredentials(t, "admin", "wrong-password"))
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	uc := newAuthUseCase(&fakeUserRepo{err: errors.New("no rows")})

	_, _, err := uc.Login(context.Background(), mustCredentials(t, "ghost", "secret-password"))
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	view, hash := adminView(t, "secret-password")
	view.IsActive = false
	uc := newAuthUseCase(&fakeUserRepo{view: view, hash: hash})

	_, _, err := uc.Login(context.Background(), mustCredentials(t, "admin", "secret-password"))
	assert.ErrorIs(t, err, usecase.ErrUserInactive)
}

func TestGetCurrentUser(t *testing.T) {
	view, _ := adminView(t, "secret-password")
	uc := newAuthUseCase(&fakeUserRepo{view: view})

	got, err := uc.GetCurrentUser(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, view, got)
}

func TestGetCurrentUserNotFound(t *testing.T) {
	uc := newAuthUseCase(&fakeUserRepo{err: errors.New("no rows")})

	_, err := uc.GetCurrentUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}
