package domain

import (
	"context"
	"errors"
)

type Service interface {
	List(ctx context.Context, companyID string) ([]APIKey, error)
	// Create issues a key and returns the plaintext exactly once.
	Create(ctx context.Context, req CreateRequest) (*SecretResponse, error)
	Revoke(ctx context.Context, id string) error
	// Authenticate resolves a raw key to the stored record and its grants.
	Authenticate(ctx context.Context, raw string) (*APIKey, []APIKeyPermission, error)
}

type GrantRequest struct {
	Module     string `json:"module" binding:"required"`
	Permission string `json:"permission" binding:"required"`
	IsEnabled  bool   `json:"isEnabled"`
}

type CreateRequest struct {
	Name      string         `json:"name" binding:"required"`
	OwnerID   string         `json:"ownerId"`
	CompanyID string         `json:"companyId"`
	Scopes    []string       `json:"scopes"`
	Grants    []GrantRequest `json:"grants"`
}

type SecretResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	APIKey string `json:"apiKey"`
}

var (
	ErrNotFound      = errors.New("api_key_not_found")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidKey    = errors.New("invalid_api_key")
	ErrInvalidModule = errors.New("invalid_module")
	ErrInvalidLevel  = errors.New("invalid_permission_level")
)
