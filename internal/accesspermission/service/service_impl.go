package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	permdomain "github.com/merchhaus/backoffice/internal/accesspermission/domain"
	"github.com/merchhaus/backoffice/internal/appmodules"
	"github.com/merchhaus/backoffice/internal/authorization"
	"github.com/merchhaus/backoffice/internal/clock"
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
	Repo  permdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  permdomain.Repository
}

func New(p Params) permdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("accesspermission.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Upsert(ctx context.Context, req permdomain.UpsertRequest) (*permdomain.AccessPermission, bool, error) {
	if !roles.IsValid(req.Role) {
		return nil, false, permdomain.ErrInvalidRole
	}
	if !appmodules.IsValid(req.Module) {
		return nil, false, permdomain.ErrInvalidModule
	}
	if !authorization.Permission(req.Permission).Valid() {
		return nil, false, permdomain.ErrInvalidLevel
	}

	var companyID *snowflake.ID
	if req.CompanyID != "" {
		id, err := snowflake.ParseString(req.CompanyID)
		if err != nil {
			return nil, false, err
		}
		companyID = &id
	}

	now := s.clock.Now().UTC()
	existing, err := s.repo.FindScoped(ctx, s.db, req.Role, req.Module, companyID)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		existing.Permission = req.Permission
		existing.UpdatedAt = now
		if err := s.repo.Restore(ctx, s.db, existing); err != nil {
			return nil, false, err
		}
		existing.DeletedAt = gorm.DeletedAt{}
		return existing, false, nil
	}

	perm := &permdomain.AccessPermission{
		ID:         s.genID.Generate(),
		Role:       req.Role,
		Module:     req.Module,
		Permission: req.Permission,
		CompanyID:  companyID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Insert(ctx, s.db, perm); err != nil {
		return nil, false, err
	}

	s.log.Info("access permission created",
		zap.String("role", perm.Role),
		zap.String("module", perm.Module),
		zap.String("permission", perm.Permission))
	return perm, true, nil
}

func (s *Service) ListDefaults(ctx context.Context) ([]permdomain.AccessPermission, error) {
	return s.repo.ListDefaults(ctx, s.db)
}

func (s *Service) ListForCompany(ctx context.Context, companyID string) ([]permdomain.AccessPermission, error) {
	id, err := snowflake.ParseString(companyID)
	if err != nil {
		return nil, permdomain.ErrNotFound
	}
	return s.repo.ListByCompany(ctx, s.db, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	permID, err := snowflake.ParseString(id)
	if err != nil {
		return permdomain.ErrNotFound
	}

	perm, err := s.repo.FindByID(ctx, s.db, permID)
	if err != nil {
		return err
	}
	if perm == nil {
		return permdomain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, permID)
}

func (s *Service) RowsForRole(ctx context.Context, role, companyID string) ([]permdomain.AccessPermission, []permdomain.AccessPermission, error) {
	defaults, err := s.repo.ListByRole(ctx, s.db, role, nil)
	if err != nil {
		return nil, nil, err
	}

	if companyID == "" {
		return defaults, nil, nil
	}

	id, err := snowflake.ParseString(companyID)
	if err != nil {
		return nil, nil, err
	}
	overrides, err := s.repo.ListByRole(ctx, s.db, role, &id)
	if err != nil {
		return nil, nil, err
	}
	return defaults, overrides, nil
}
