package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/merchhaus/backoffice/internal/auth/password"
	"github.com/merchhaus/backoffice/internal/clock"
	"github.com/merchhaus/backoffice/internal/roles"
	userdomain "github.com/merchhaus/backoffice/internal/user/domain"
	"github.com/merchhaus/backoffice/pkg/db"
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
	Repo  userdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  userdomain.Repository
}

func New(p Params) userdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*userdomain.User, error) {
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userdomain.ErrNotFound
	}
	return user, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	user, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userdomain.ErrNotFound
	}
	return user, nil
}

func (s *Service) List(ctx context.Context, req userdomain.ListRequest) ([]userdomain.User, pagination.Meta, error) {
	users, total, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return users, pagination.BuildMeta(total, req.Params), nil
}

func (s *Service) Create(ctx context.Context, req userdomain.CreateRequest) (*userdomain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, userdomain.ErrInvalidEmail
	}

	role := req.Role
	if role == "" {
		role = roles.User
	}
	if !roles.IsValid(role) {
		return nil, userdomain.ErrInvalidRole
	}

	existing, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, userdomain.ErrEmailInUse
	}

	now := s.clock.Now().UTC()
	user := &userdomain.User{
		ID:        s.genID.Generate(),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		Role:      role,
		IsGhost:   req.IsGhost,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.Password != "" {
		hash, err := password.Hash(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if req.CompanyID != "" {
		companyID, err := snowflake.ParseString(req.CompanyID)
		if err != nil {
			return nil, err
		}
		user.CompanyID = &companyID
	}

	if err := s.repo.Insert(ctx, s.db, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, userdomain.ErrEmailInUse
		}
		return nil, err
	}

	s.log.Info("user created", zap.String("user_id", user.ID.String()), zap.String("role", user.Role))
	return user, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req userdomain.UpdateRequest) (*userdomain.User, error) {
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userdomain.ErrNotFound
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Role != nil {
		if !roles.IsValid(*req.Role) {
			return nil, userdomain.ErrInvalidRole
		}
		user.Role = *req.Role
	}
	if req.CompanyID != nil {
		if *req.CompanyID == "" {
			user.CompanyID = nil
		} else {
			companyID, err := snowflake.ParseString(*req.CompanyID)
			if err != nil {
				return nil, err
			}
			user.CompanyID = &companyID
		}
	}
	user.UpdatedAt = s.clock.Now().UTC()

	if err := s.repo.Update(ctx, s.db, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if user == nil {
		return userdomain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, id)
}
