package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Campaign, error)
	// FindScoped matches on name, type and company, including soft-deleted
	// rows for restore-on-recreate.
	FindScoped(ctx context.Context, db *gorm.DB, name, campaignType string, companyID *snowflake.ID) (*Campaign, error)
	ListForCompany(ctx context.Context, db *gorm.DB, req ListRequest) ([]View, int64, error)
	Insert(ctx context.Context, db *gorm.DB, campaign *Campaign) error
	Update(ctx context.Context, db *gorm.DB, campaign *Campaign) error
	Restore(ctx context.Context, db *gorm.DB, campaign *Campaign) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	FindOrderLimit(ctx context.Context, db *gorm.DB, campaignID snowflake.ID) (*CampaignOrderLimit, error)
	InsertOrderLimit(ctx context.Context, db *gorm.DB, limit *CampaignOrderLimit) error
	UpdateOrderLimit(ctx context.Context, db *gorm.DB, limit *CampaignOrderLimit) error

	InsertAddress(ctx context.Context, db *gorm.DB, address *CampaignAddress) error
	ListAddresses(ctx context.Context, db *gorm.DB, campaignID snowflake.ID) ([]CampaignAddress, error)
	FindAddress(ctx context.Context, db *gorm.DB, campaignID, addressID snowflake.ID) (*CampaignAddress, error)
	DeleteAddress(ctx context.Context, db *gorm.DB, addressID snowflake.ID) error
}
