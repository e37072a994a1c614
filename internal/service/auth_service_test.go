package service

import (
	"context"
	"testing"
	"time"

	"booknest-be/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeStore()
	svc := NewAuthService(newFakeFactory(store), "test-secret", time.Hour, nopLogger{})
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:       "alex@example.com",
		Password:    "hunter2hunter2",
		DisplayName: "Alex",
	})
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", reg.Email)

	login, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "alex@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, reg.Id, login.Member.Id)
	assert.Equal(t, "Alex", login.Member.DisplayName)

	// The token carries the member id claim the middleware relies on.
	token, err := jwt.Parse(login.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, reg.Id.String(), claims["member_id"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := NewAuthService(newFakeFactory(store), "test-secret", time.Hour, nopLogger{})
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:       "alex@example.com",
		Password:    "hunter2hunter2",
		DisplayName: "Alex",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Email:       "alex@example.com",
		Password:    "different-pass",
		DisplayName: "Imposter",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginFailures(t *testing.T) {
	store := newFakeStore()
	svc := NewAuthService(newFakeFactory(store), "test-secret", time.Hour, nopLogger{})
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:       "alex@example.com",
		Password:    "hunter2hunter2",
		DisplayName: "Alex",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "alex@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
