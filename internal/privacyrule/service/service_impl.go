package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/merchhaus/backoffice/internal/appmodules"
	"github.com/merchhaus/backoffice/internal/clock"
	ruledomain "github.com/merchhaus/backoffice/internal/privacyrule/domain"
	"github.com/merchhaus/backoffice/internal/roles"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  ruledomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  ruledomain.Repository
}

func New(p Params) ruledomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("privacyrule.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req ruledomain.CreateRequest) (*ruledomain.PrivacyRule, error) {
	if !roles.IsValid(req.Role) {
		return nil, ruledomain.ErrInvalidRole
	}
	if !appmodules.IsValid(req.Module) {
		return nil, ruledomain.ErrInvalidModule
	}

	companyID, err := snowflake.ParseString(req.CompanyID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	rule := &ruledomain.PrivacyRule{
		ID:        s.genID.Generate(),
		CompanyID: companyID,
		Role:      req.Role,
		Module:    req.Module,
		IsEnabled: req.IsEnabled,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, rule); err != nil {
		return nil, err
	}

	s.log.Info("privacy rule created",
		zap.String("company_id", rule.CompanyID.String()),
		zap.String("role", rule.Role),
		zap.String("module", rule.Module))
	return rule, nil
}

func (s *Service) ListForCompany(ctx context.Context, companyID string) ([]ruledomain.PrivacyRule, error) {
	id, err := snowflake.ParseString(companyID)
	if err != nil {
		return nil, ruledomain.ErrNotFound
	}
	return s.repo.ListByCompany(ctx, s.db, id)
}

func (s *Service) Update(ctx context.Context, id string, req ruledomain.UpdateRequest) (*ruledomain.PrivacyRule, error) {
	ruleID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, ruledomain.ErrNotFound
	}

	rule, err := s.repo.FindByID(ctx, s.db, ruleID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ruledomain.ErrNotFound
	}

	if req.IsEnabled != nil {
		rule.IsEnabled = *req.IsEnabled
	}
	rule.UpdatedAt = s.clock.Now().UTC()

	if err := s.repo.Update(ctx, s.db, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ruleID, err := snowflake.ParseString(id)
	if err != nil {
		return ruledomain.ErrNotFound
	}

	rule, err := s.repo.FindByID(ctx, s.db, ruleID)
	if err != nil {
		return err
	}
	if rule == nil {
		return ruledomain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, ruleID)
}

func (s *Service) RedactionEnabled(ctx context.Context, companyID, role, module string) (bool, error) {
	if companyID == "" {
		return false, nil
	}
	id, err := snowflake.ParseString(companyID)
	if err != nil {
		return false, nil
	}

	rule, err := s.repo.FindActive(ctx, s.db, id, role, module)
	if err != nil {
		return false, err
	}
	return rule != nil, nil
}
