package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	campaigndomain "github.com/merchhaus/backoffice/internal/campaign/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() campaigndomain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*campaigndomain.Campaign, error) {
	var campaign campaigndomain.Campaign
	err := db.WithContext(ctx).First(&campaign, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *repo) FindScoped(ctx context.Context, db *gorm.DB, name, campaignType string, companyID *snowflake.ID) (*campaigndomain.Campaign, error) {
	q := db.WithContext(ctx).Unscoped().
		Where("name = ? AND type = ?", name, campaignType)
	if companyID == nil {
		q = q.Where("company_id IS NULL")
	} else {
		q = q.Where("company_id = ?", *companyID)
	}

	var campaign campaigndomain.Campaign
	err := q.First(&campaign).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *repo) ListForCompany(ctx context.Context, db *gorm.DB, req campaigndomain.ListRequest) ([]campaigndomain.View, int64, error) {
	q := db.WithContext(ctx).Model(&campaigndomain.Campaign{}).
		Where("campaigns.company_id = ?", req.CompanyID)
	if !req.IncludeHidden {
		q = q.Where("campaigns.is_hidden = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var views []campaigndomain.View
	p := req.Params.Normalized()
	err := q.
		Select(`campaigns.*,
			COALESCE(l.order_limit, 0) AS order_limit,
			COALESCE(q.total_ordered, 0) AS total_ordered_quota`).
		Joins("LEFT JOIN campaign_order_limits l ON l.campaign_id = campaigns.id AND l.deleted_at IS NULL").
		Joins("LEFT JOIN campaign_quotas q ON q.campaign_id = campaigns.id").
		Order("campaigns.created_at DESC").
		Limit(p.Limit).
		Offset(req.Params.Offset()).
		Scan(&views).Error
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, campaign *campaigndomain.Campaign) error {
	return db.WithContext(ctx).Create(campaign).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, campaign *campaigndomain.Campaign) error {
	return db.WithContext(ctx).Save(campaign).Error
}

func (r *repo) Restore(ctx context.Context, db *gorm.DB, campaign *campaigndomain.Campaign) error {
	return db.WithContext(ctx).Unscoped().
		Model(&campaigndomain.Campaign{}).
		Where("id = ?", campaign.ID).
		Updates(map[string]interface{}{
			"environment": campaign.Environment,
			"is_hidden":   campaign.IsHidden,
			"start_date":  campaign.StartDate,
			"end_date":    campaign.EndDate,
			"owner_id":    campaign.OwnerID,
			"updated_at":  campaign.UpdatedAt,
			"deleted_at":  nil,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&campaigndomain.Campaign{}, "id = ?", id).Error
}

func (r *repo) FindOrderLimit(ctx context.Context, db *gorm.DB, campaignID snowflake.ID) (*campaigndomain.CampaignOrderLimit, error) {
	var limit campaigndomain.CampaignOrderLimit
	err := db.WithContext(ctx).Unscoped().
		First(&limit, "campaign_id = ?", campaignID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &limit, nil
}

func (r *repo) InsertOrderLimit(ctx context.Context, db *gorm.DB, limit *campaigndomain.CampaignOrderLimit) error {
	return db.WithContext(ctx).Create(limit).Error
}

func (r *repo) UpdateOrderLimit(ctx context.Context, db *gorm.DB, limit *campaigndomain.CampaignOrderLimit) error {
	return db.WithContext(ctx).Unscoped().
		Model(&campaigndomain.CampaignOrderLimit{}).
		Where("id = ?", limit.ID).
		Updates(map[string]interface{}{
			"order_limit": limit.OrderLimit,
			"updated_at":  limit.UpdatedAt,
			"deleted_at":  nil,
		}).Error
}

func (r *repo) InsertAddress(ctx context.Context, db *gorm.DB, address *campaigndomain.CampaignAddress) error {
	return db.WithContext(ctx).Create(address).Error
}

func (r *repo) ListAddresses(ctx context.Context, db *gorm.DB, campaignID snowflake.ID) ([]campaigndomain.CampaignAddress, error) {
	var addresses []campaigndomain.CampaignAddress
	err := db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("last_name ASC, first_name ASC").
		Find(&addresses).Error
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *repo) FindAddress(ctx context.Context, db *gorm.DB, campaignID, addressID snowflake.ID) (*campaigndomain.CampaignAddress, error) {
	var address campaigndomain.CampaignAddress
	err := db.WithContext(ctx).
		First(&address, "id = ? AND campaign_id = ?", addressID, campaignID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *repo) DeleteAddress(ctx context.Context, db *gorm.DB, addressID snowflake.ID) error {
	return db.WithContext(ctx).Delete(&campaigndomain.CampaignAddress{}, "id = ?", addressID).Error
}
