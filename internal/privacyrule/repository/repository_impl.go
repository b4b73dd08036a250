package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	ruledomain "github.com/merchhaus/backoffice/internal/privacyrule/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() ruledomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, rule *ruledomain.PrivacyRule) error {
	return db.WithContext(ctx).Create(rule).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ruledomain.PrivacyRule, error) {
	var rule ruledomain.PrivacyRule
	err := db.WithContext(ctx).First(&rule, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *repo) FindActive(ctx context.Context, db *gorm.DB, companyID snowflake.ID, role, module string) (*ruledomain.PrivacyRule, error) {
	var rule ruledomain.PrivacyRule
	err := db.WithContext(ctx).
		Where("company_id = ? AND role = ? AND module = ? AND is_enabled = ?", companyID, role, module, true).
		First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *repo) ListByCompany(ctx context.Context, db *gorm.DB, companyID snowflake.ID) ([]ruledomain.PrivacyRule, error) {
	var rules []ruledomain.PrivacyRule
	err := db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("role ASC, module ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, rule *ruledomain.PrivacyRule) error {
	return db.WithContext(ctx).Save(rule).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&ruledomain.PrivacyRule{}, "id = ?", id).Error
}
