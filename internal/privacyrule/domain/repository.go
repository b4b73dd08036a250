package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, rule *PrivacyRule) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PrivacyRule, error)
	FindActive(ctx context.Context, db *gorm.DB, companyID snowflake.ID, role, module string) (*PrivacyRule, error)
	ListByCompany(ctx context.Context, db *gorm.DB, companyID snowflake.ID) ([]PrivacyRule, error)
	Update(ctx context.Context, db *gorm.DB, rule *PrivacyRule) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
