package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	companydomain "github.com/merchhaus/backoffice/internal/company/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() companydomain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*companydomain.Company, error) {
	var company companydomain.Company
	err := db.WithContext(ctx).First(&company, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, req companydomain.ListRequest) ([]companydomain.Company, int64, error) {
	q := db.WithContext(ctx).Model(&companydomain.Company{})
	if req.Search != "" {
		pattern := "%" + strings.ToLower(req.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(domain) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var companies []companydomain.Company
	p := req.Params.Normalized()
	err := q.Order("name ASC").Limit(p.Limit).Offset(req.Params.Offset()).Find(&companies).Error
	if err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, company *companydomain.Company) error {
	return db.WithContext(ctx).Create(company).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, company *companydomain.Company) error {
	return db.WithContext(ctx).Save(company).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&companydomain.Company{}, "id = ?", id).Error
}
