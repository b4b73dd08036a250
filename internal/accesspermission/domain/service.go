package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Upsert creates a permission row, restoring and updating a previously
	// soft-deleted row for the same scope when one exists. The returned flag
	// is true when a brand-new row was created.
	Upsert(ctx context.Context, req UpsertRequest) (*AccessPermission, bool, error)
	ListDefaults(ctx context.Context) ([]AccessPermission, error)
	ListForCompany(ctx context.Context, companyID string) ([]AccessPermission, error)
	Delete(ctx context.Context, id string) error

	// RowsForRole loads the defaults and company overrides consulted when
	// resolving a request. Overrides are empty when companyID is empty.
	RowsForRole(ctx context.Context, role, companyID string) (defaults, overrides []AccessPermission, err error)
}

type UpsertRequest struct {
	Role       string `json:"role" binding:"required"`
	Module     string `json:"module" binding:"required"`
	Permission string `json:"permission" binding:"required"`
	CompanyID  string `json:"companyId"`
}

var (
	ErrNotFound      = errors.New("access_permission_not_found")
	ErrInvalidRole   = errors.New("invalid_role")
	ErrInvalidModule = errors.New("invalid_module")
	ErrInvalidLevel  = errors.New("invalid_permission_level")
)
