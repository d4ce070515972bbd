package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/eakyurek/gradehub/internal/app/models"
	"github.com/eakyurek/gradehub/internal/app/models/dto"
	"github.com/eakyurek/gradehub/internal/pkg/apperrors"
	"github.com/eakyurek/gradehub/internal/pkg/auth"
)

func newAuthFixture() (*AuthService, *memStore, *auth.JWTService) {
	m := newMemStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "gradehub-test",
	})
	return NewAuthService(m, jwtService), m, jwtService
}

func TestAuthService_Register(t *testing.T) {
	svc, _, jwtService := newAuthFixture()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		FirstName: "Alice",
		LastName:  "Nguyen",
		Email:     "alice@school.edu",
		Password:  "s3cret!",
	})
	assert.NoError(t, err)
	// Role defaults to STUDENT when omitted.
	assert.Equal(t, string(models.RoleStudent), resp.User.RoleType)
	assert.NotEmpty(t, resp.Token)

	claims, err := jwtService.ValidateToken(resp.Token)
	assert.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "alice@school.edu", claims.Email)

	// Duplicate email is rejected by the store.
	_, err = svc.Register(ctx, &dto.RegisterRequest{
		FirstName: "Other",
		LastName:  "Alice",
		Email:     "alice@school.edu",
		Password:  "another1",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestAuthService_Register_AdminRoleRejected(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FirstName: "Eve",
		LastName:  "Mallory",
		Email:     "eve@school.edu",
		Password:  "s3cret!",
		RoleType:  "ADMIN",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestAuthService_Login(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		FirstName: "Alice",
		LastName:  "Nguyen",
		Email:     "alice@school.edu",
		Password:  "s3cret!",
		RoleType:  "PROFESSOR",
	})
	assert.NoError(t, err)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "alice@school.edu", Password: "s3cret!"})
	assert.NoError(t, err)
	assert.Equal(t, string(models.RoleProfessor), resp.User.RoleType)
	assert.NotEmpty(t, resp.Token)

	// Wrong password and unknown email are indistinguishable.
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "alice@school.edu", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@school.edu", Password: "s3cret!"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_Me(t *testing.T) {
	svc, m, _ := newAuthFixture()
	ctx := context.Background()

	user := m.seedUser(models.RoleStudent, "alice@school.edu")

	resp, err := svc.Me(ctx, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, user.Email, resp.Email)

	_, err = svc.Me(ctx, 9999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
