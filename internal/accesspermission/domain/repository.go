package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// FindScoped looks up the row for (role, module, companyID) including
	// soft-deleted rows, so callers can restore instead of recreating.
	FindScoped(ctx context.Context, db *gorm.DB, role, module string, companyID *snowflake.ID) (*AccessPermission, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*AccessPermission, error)
	ListDefaults(ctx context.Context, db *gorm.DB) ([]AccessPermission, error)
	ListByCompany(ctx context.Context, db *gorm.DB, companyID snowflake.ID) ([]AccessPermission, error)
	ListByRole(ctx context.Context, db *gorm.DB, role string, companyID *snowflake.ID) ([]AccessPermission, error)
	Insert(ctx context.Context, db *gorm.DB, perm *AccessPermission) error
	// Restore clears the soft-delete marker and applies the new level.
	Restore(ctx context.Context, db *gorm.DB, perm *AccessPermission) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	CountDefaults(ctx context.Context, db *gorm.DB) (int64, error)
}
