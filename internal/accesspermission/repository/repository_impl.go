package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	permdomain "github.com/merchhaus/backoffice/internal/accesspermission/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() permdomain.Repository {
	return &repo{}
}

func (r *repo) FindScoped(ctx context.Context, db *gorm.DB, role, module string, companyID *snowflake.ID) (*permdomain.AccessPermission, error) {
	q := db.WithContext(ctx).Unscoped().
		Where("role = ? AND module = ?", role, module)
	if companyID == nil {
		q = q.Where("company_id IS NULL")
	} else {
		q = q.Where("company_id = ?", *companyID)
	}

	var perm permdomain.AccessPermission
	err := q.First(&perm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &perm, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*permdomain.AccessPermission, error) {
	var perm permdomain.AccessPermission
	err := db.WithContext(ctx).First(&perm, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &perm, nil
}

func (r *repo) ListDefaults(ctx context.Context, db *gorm.DB) ([]permdomain.AccessPermission, error) {
	var perms []permdomain.AccessPermission
	err := db.WithContext(ctx).
		Where("company_id IS NULL").
		Order("role ASC, module ASC").
		Find(&perms).Error
	if err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *repo) ListByCompany(ctx context.Context, db *gorm.DB, companyID snowflake.ID) ([]permdomain.AccessPermission, error) {
	var perms []permdomain.AccessPermission
	err := db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("role ASC, module ASC").
		Find(&perms).Error
	if err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *repo) ListByRole(ctx context.Context, db *gorm.DB, role string, companyID *snowflake.ID) ([]permdomain.AccessPermission, error) {
	q := db.WithContext(ctx).Where("role = ?", role)
	if companyID == nil {
		q = q.Where("company_id IS NULL")
	} else {
		q = q.Where("company_id = ?", *companyID)
	}

	var perms []permdomain.AccessPermission
	if err := q.Find(&perms).Error; err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, perm *permdomain.AccessPermission) error {
	return db.WithContext(ctx).Create(perm).Error
}

func (r *repo) Restore(ctx context.Context, db *gorm.DB, perm *permdomain.AccessPermission) error {
	return db.WithContext(ctx).Unscoped().
		Model(&permdomain.AccessPermission{}).
		Where("id = ?", perm.ID).
		Updates(map[string]interface{}{
			"permission": perm.Permission,
			"updated_at": perm.UpdatedAt,
			"deleted_at": nil,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&permdomain.AccessPermission{}, "id = ?", id).Error
}

func (r *repo) CountDefaults(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&permdomain.AccessPermission{}).
		Where("company_id IS NULL").
		Count(&total).Error
	return total, err
}
