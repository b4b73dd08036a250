package domain

import (
	"context"
	"errors"
	"time"

	userdomain "github.com/merchhaus/backoffice/internal/user/domain"
)

type Service interface {
	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	// Authenticate resolves a raw session token to its user.
	Authenticate(ctx context.Context, token string) (*userdomain.User, error)
	// Logout revokes the session behind the token. Unknown tokens are a
	// no-op.
	Logout(ctx context.Context, token string) error
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *userdomain.User
}

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrSessionExpired     = errors.New("session_expired")
)
