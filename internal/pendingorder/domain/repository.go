package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ListQuery is what the repository needs to build the visibility-filtered,
// role-scoped listing. Empty scope fields mean no filter.
type ListQuery struct {
	ListRequest
	// CompanyID restricts the listing to one company (company-level roles).
	CompanyID string
	// OwnerID restricts the listing to one creator (regular users).
	OwnerID string
}

type Repository interface {
	InsertBatch(ctx context.Context, db *gorm.DB, orders []PendingOrder) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PendingOrder, error)
	FindByPostedIDs(ctx context.Context, db *gorm.DB, postedIDs []string) ([]PendingOrder, error)
	List(ctx context.Context, db *gorm.DB, q ListQuery) ([]PendingOrder, int64, error)
	Update(ctx context.Context, db *gorm.DB, order *PendingOrder) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
