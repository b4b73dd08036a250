package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, key *APIKey, grants []APIKeyPermission) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*APIKey, error)
	FindByKeyHash(ctx context.Context, db *gorm.DB, keyHash string) (*APIKey, error)
	ListByCompany(ctx context.Context, db *gorm.DB, companyID snowflake.ID) ([]APIKey, error)
	ListGrants(ctx context.Context, db *gorm.DB, keyID snowflake.ID) ([]APIKeyPermission, error)
	TouchLastUsed(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
