package domain

import (
	"context"
	"errors"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*PrivacyRule, error)
	ListForCompany(ctx context.Context, companyID string) ([]PrivacyRule, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*PrivacyRule, error)
	Delete(ctx context.Context, id string) error

	// RedactionEnabled reports whether an enabled rule exists for the
	// company, role and module combination.
	RedactionEnabled(ctx context.Context, companyID, role, module string) (bool, error)
}

type CreateRequest struct {
	CompanyID string `json:"companyId" binding:"required"`
	Role      string `json:"role" binding:"required"`
	Module    string `json:"module" binding:"required"`
	IsEnabled bool   `json:"isEnabled"`
}

type UpdateRequest struct {
	IsEnabled *bool `json:"isEnabled"`
}

var (
	ErrNotFound      = errors.New("privacy_rule_not_found")
	ErrInvalidRole   = errors.New("invalid_role")
	ErrInvalidModule = errors.New("invalid_module")
)
