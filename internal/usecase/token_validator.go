package usecase

import (
	"clinic-booking-api/internal/domain/user"
	"clinic-booking-api/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Principal identifies the authenticated caller for downstream handlers.
type Principal struct {
	UserID   uuid.UUID
	Username string
	Role     user.Role
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (Principal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Principal{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Principal{}, err
	}

	return Principal{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     role,
	}, nil
}
