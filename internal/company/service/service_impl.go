package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/merchhaus/backoffice/internal/clock"
	companydomain "github.com/merchhaus/backoffice/internal/company/domain"
	"github.com/merchhaus/backoffice/pkg/db/pagination"
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
	Repo  companydomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  companydomain.Repository
}

func New(p Params) companydomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("company.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*companydomain.Company, error) {
	company, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, companydomain.ErrNotFound
	}
	return company, nil
}

func (s *Service) List(ctx context.Context, req companydomain.ListRequest) ([]companydomain.Company, pagination.Meta, error) {
	companies, total, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return companies, pagination.BuildMeta(total, req.Params), nil
}

func (s *Service) Create(ctx context.Context, req companydomain.CreateRequest) (*companydomain.Company, error) {
	now := s.clock.Now().UTC()
	company := &companydomain.Company{
		ID:         s.genID.Generate(),
		Name:       strings.TrimSpace(req.Name),
		Suffix:     strings.TrimSpace(req.Suffix),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		VAT:        strings.TrimSpace(req.VAT),
		Domain:     strings.TrimSpace(req.Domain),
		CustomerID: strings.TrimSpace(req.CustomerID),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if req.OwnerID != "" {
		ownerID, err := snowflake.ParseString(req.OwnerID)
		if err != nil {
			return nil, err
		}
		company.OwnerID = &ownerID
	}

	if err := s.repo.Insert(ctx, s.db, company); err != nil {
		return nil, err
	}

	s.log.Info("company created", zap.String("company_id", company.ID.String()))
	return company, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req companydomain.UpdateRequest) (*companydomain.Company, error) {
	company, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, companydomain.ErrNotFound
	}

	if req.Name != nil {
		company.Name = strings.TrimSpace(*req.Name)
	}
	if req.Suffix != nil {
		company.Suffix = strings.TrimSpace(*req.Suffix)
	}
	if req.Email != nil {
		company.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		company.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.VAT != nil {
		company.VAT = strings.TrimSpace(*req.VAT)
	}
	if req.Domain != nil {
		company.Domain = strings.TrimSpace(*req.Domain)
	}
	if req.CustomerID != nil {
		company.CustomerID = strings.TrimSpace(*req.CustomerID)
	}
	company.UpdatedAt = s.clock.Now().UTC()

	if err := s.repo.Update(ctx, s.db, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	company, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if company == nil {
		return companydomain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, id)
}
