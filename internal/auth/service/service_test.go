package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authdomain "github.com/ParthhMahajann/rera-quotation-system/internal/auth/domain"
	"github.com/ParthhMahajann/rera-quotation-system/internal/auth/repository"
)

func newTestService(t *testing.T) (authdomain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authdomain.User{}, &authdomain.Session{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(db),
	})
	return svc, db
}

func TestSignupCreatesUserAndSession(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	result, err := svc.Signup(ctx, authdomain.SignupRequest{
		Username: "  Asha  ",
		Email:    "asha@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "asha", result.Actor.Username)
	assert.Equal(t, authdomain.RoleUser, result.Actor.Role)
	assert.NotEmpty(t, result.RawToken)
	assert.True(t, result.ExpiresAt.After(time.Now()))

	var user authdomain.User
	require.NoError(t, db.Where("username = ?", "asha").First(&user).Error)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.Zero(t, user.DiscountThreshold)
}

func TestSignupValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, authdomain.SignupRequest{Username: "  ", Password: "secret123"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidUsername)

	_, err = svc.Signup(ctx, authdomain.SignupRequest{Username: "asha", Password: "short"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidPassword)
}

func TestSignupRejectsDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, authdomain.SignupRequest{Username: "asha", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, authdomain.SignupRequest{Username: "ASHA", Password: "secret123"})
	assert.ErrorIs(t, err, authdomain.ErrUserExists)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, authdomain.SignupRequest{Username: "asha", Password: "secret123"})
	require.NoError(t, err)

	result, err := svc.Login(ctx, authdomain.LoginRequest{Username: "Asha", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "asha", result.Actor.Username)

	_, err = svc.Login(ctx, authdomain.LoginRequest{Username: "asha", Password: "wrong"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, authdomain.LoginRequest{Username: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	signup, err := svc.Signup(ctx, authdomain.SignupRequest{Username: "asha", Password: "secret123"})
	require.NoError(t, err)

	actor, err := svc.Authenticate(ctx, signup.RawToken)
	require.NoError(t, err)
	assert.Equal(t, "asha", actor.Username)

	_, err = svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, authdomain.ErrInvalidSession)

	_, err = svc.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, authdomain.ErrInvalidSession)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	signup, err := svc.Signup(ctx, authdomain.SignupRequest{Username: "asha", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, signup.RawToken))

	_, err = svc.Authenticate(ctx, signup.RawToken)
	assert.ErrorIs(t, err, authdomain.ErrSessionRevoked)

	// Logging out an unknown token is a no-op.
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestAuthenticateSeesRoleChanges(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	signup, err := svc.Signup(ctx, authdomain.SignupRequest{Username: "asha", Password: "secret123"})
	require.NoError(t, err)

	err = db.Model(&authdomain.User{}).
		Where("username = ?", "asha").
		Updates(map[string]any{"role": authdomain.RoleManager, "discount_threshold": 20}).Error
	require.NoError(t, err)

	actor, err := svc.Authenticate(ctx, signup.RawToken)
	require.NoError(t, err)
	assert.Equal(t, authdomain.RoleManager, actor.Role)
	assert.Equal(t, 20.0, actor.Threshold)
}
