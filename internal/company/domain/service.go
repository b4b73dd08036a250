package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/merchhaus/backoffice/pkg/db/pagination"
)

type Service interface {
	Get(ctx context.Context, id snowflake.ID) (*Company, error)
	List(ctx context.Context, req ListRequest) ([]Company, pagination.Meta, error)
	Create(ctx context.Context, req CreateRequest) (*Company, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRequest) (*Company, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

type CreateRequest struct {
	Name       string `json:"name" binding:"required"`
	Suffix     string `json:"suffix"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	VAT        string `json:"vat"`
	Domain     string `json:"domain"`
	CustomerID string `json:"customerId"`
	OwnerID    string `json:"ownerId"`
}

type UpdateRequest struct {
	Name       *string `json:"name"`
	Suffix     *string `json:"suffix"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	VAT        *string `json:"vat"`
	Domain     *string `json:"domain"`
	CustomerID *string `json:"customerId"`
}

type ListRequest struct {
	pagination.Params
	Search string `form:"search"`
}

var ErrNotFound = errors.New("company_not_found")
