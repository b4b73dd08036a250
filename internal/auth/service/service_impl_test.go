package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	authdomain "github.com/merchhaus/backoffice/internal/auth/domain"
	"github.com/merchhaus/backoffice/internal/auth/password"
	"github.com/merchhaus/backoffice/internal/auth/repository"
	"github.com/merchhaus/backoffice/internal/clock"
	"github.com/merchhaus/backoffice/internal/config"
	userdomain "github.com/merchhaus/backoffice/internal/user/domain"
	userrepository "github.com/merchhaus/backoffice/internal/user/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (authdomain.Service, *gorm.DB, *snowflake.Node, *clock.FakeClock) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&authdomain.Session{}, &userdomain.User{}))

	node, err := snowflake.NewNode(0)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC))

	svc := New(Params{
		DB:       gdb,
		Log:      zaptest.NewLogger(t),
		Cfg:      config.Config{SessionTTL: time.Hour},
		GenID:    node,
		Clock:    clk,
		Repo:     repository.Provide(),
		UserRepo: userrepository.Provide(),
	})
	return svc, gdb, node, clk
}

func createUser(t *testing.T, gdb *gorm.DB, node *snowflake.Node, email, pass string, ghost bool) *userdomain.User {
	t.Helper()
	hash := ""
	if pass != "" {
		var err error
		hash, err = password.Hash(pass)
		require.NoError(t, err)
	}
	user := &userdomain.User{
		ID:           node.Generate(),
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        email,
		PasswordHash: hash,
		Role:         "Employee",
		IsGhost:      ghost,
	}
	require.NoError(t, gdb.Create(user).Error)
	return user
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc, gdb, node, _ := setupService(t)
	ctx := context.Background()
	user := createUser(t, gdb, node, "jane@example.com", "s3cret", false)

	result, err := svc.Login(ctx, authdomain.LoginRequest{Email: "  Jane@Example.com ", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.User.ID)

	got, err := svc.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, gdb, node, _ := setupService(t)
	ctx := context.Background()
	createUser(t, gdb, node, "jane@example.com", "s3cret", false)

	_, err := svc.Login(ctx, authdomain.LoginRequest{Email: "jane@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, authdomain.LoginRequest{Email: "unknown@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
}

func TestLoginRejectsGhostUsers(t *testing.T) {
	svc, gdb, node, _ := setupService(t)
	createUser(t, gdb, node, "ghost@example.com", "s3cret", true)

	_, err := svc.Login(context.Background(), authdomain.LoginRequest{Email: "ghost@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
}

func TestAuthenticateExpiredSession(t *testing.T) {
	svc, gdb, node, clk := setupService(t)
	ctx := context.Background()
	createUser(t, gdb, node, "jane@example.com", "s3cret", false)

	result, err := svc.Login(ctx, authdomain.LoginRequest{Email: "jane@example.com", Password: "s3cret"})
	require.NoError(t, err)

	clk.Advance(2 * time.Hour)

	_, err = svc.Authenticate(ctx, result.Token)
	assert.ErrorIs(t, err, authdomain.ErrSessionExpired)

	// The expired session is gone; a second attempt no longer resolves it.
	_, err = svc.Authenticate(ctx, result.Token)
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, gdb, node, _ := setupService(t)
	ctx := context.Background()
	createUser(t, gdb, node, "jane@example.com", "s3cret", false)

	result, err := svc.Login(ctx, authdomain.LoginRequest{Email: "jane@example.com", Password: "s3cret"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.Token))
	_, err = svc.Authenticate(ctx, result.Token)
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)

	// Logging out an unknown token is a no-op.
	require.NoError(t, svc.Logout(ctx, "never-issued"))
}
