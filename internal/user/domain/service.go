package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/merchhaus/backoffice/pkg/db/pagination"
)

type Service interface {
	Get(ctx context.Context, id snowflake.ID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, req ListRequest) ([]User, pagination.Meta, error)
	Create(ctx context.Context, req CreateRequest) (*User, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRequest) (*User, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

type CreateRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	CompanyID string `json:"companyId"`
	IsGhost   bool   `json:"isGhost"`
}

type UpdateRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Role      *string `json:"role"`
	CompanyID *string `json:"companyId"`
}

type ListRequest struct {
	pagination.Params
	CompanyID string `form:"companyId"`
	Search    string `form:"search"`
}

var (
	ErrNotFound     = errors.New("user_not_found")
	ErrInvalidRole  = errors.New("invalid_role")
	ErrEmailInUse   = errors.New("email_in_use")
	ErrInvalidEmail = errors.New("invalid_email")
)
