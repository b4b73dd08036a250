package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	orderdomain "github.com/merchhaus/backoffice/internal/pendingorder/domain"
	"gorm.io/gorm"
)

// visibleExpr filters out orders the back office is done with: an order
// stays visible while it has not fully left the queue, or while it is
// posted and queued but its status has not progressed yet.
const visibleExpr = "((is_posted = ? OR is_queued = ?) OR (is_posted = ? AND is_queued = ? AND order_status = 0))"

type repo struct{}

func Provide() orderdomain.Repository {
	return &repo{}
}

func (r *repo) InsertBatch(ctx context.Context, db *gorm.DB, orders []orderdomain.PendingOrder) error {
	if len(orders) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&orders).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*orderdomain.PendingOrder, error) {
	var order orderdomain.PendingOrder
	err := db.WithContext(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repo) FindByPostedIDs(ctx context.Context, db *gorm.DB, postedIDs []string) ([]orderdomain.PendingOrder, error) {
	var orders []orderdomain.PendingOrder
	err := db.WithContext(ctx).Where("posted_order_id IN ?", postedIDs).Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, q orderdomain.ListQuery) ([]orderdomain.PendingOrder, int64, error) {
	query := db.WithContext(ctx).Model(&orderdomain.PendingOrder{}).
		Where(visibleExpr, false, false, true, true)
	if q.CompanyID != "" {
		query = query.Where("company_id = ?", q.CompanyID)
	}
	if q.OwnerID != "" {
		query = query.Where("owner_id = ?", q.OwnerID)
	}
	if q.CampaignID != "" {
		query = query.Where("campaign_id = ?", q.CampaignID)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where(
			"LOWER(CAST(shipping_addresses AS TEXT)) LIKE ? OR LOWER(posted_order_id) LIKE ?",
			pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []orderdomain.PendingOrder
	p := q.Params.Normalized()
	err := query.
		Order("created_at DESC").
		Limit(p.Limit).
		Offset(q.Params.Offset()).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, order *orderdomain.PendingOrder) error {
	return db.WithContext(ctx).Save(order).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&orderdomain.PendingOrder{}, "id = ?", id).Error
}
