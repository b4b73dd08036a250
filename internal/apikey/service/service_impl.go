package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	apikeydomain "github.com/merchhaus/backoffice/internal/apikey/domain"
	"github.com/merchhaus/backoffice/internal/appmodules"
	"github.com/merchhaus/backoffice/internal/authorization"
	"github.com/merchhaus/backoffice/internal/clock"
	"github.com/lib/pq"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	apiKeyPrefix      = "bo_live_"
	apiKeySecretBytes = 32
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  apikeydomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  apikeydomain.Repository
}

func New(p Params) apikeydomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("apikey.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context, companyID string) ([]apikeydomain.APIKey, error) {
	id, err := snowflake.ParseString(companyID)
	if err != nil {
		return nil, apikeydomain.ErrNotFound
	}
	return s.repo.ListByCompany(ctx, s.db, id)
}

func (s *Service) Create(ctx context.Context, req apikeydomain.CreateRequest) (*apikeydomain.SecretResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apikeydomain.ErrInvalidName
	}

	grants := make([]apikeydomain.APIKeyPermission, 0, len(req.Grants))
	now := s.clock.Now().UTC()
	id := s.genID.Generate()

	for _, g := range req.Grants {
		if !appmodules.IsValid(g.Module) {
			return nil, apikeydomain.ErrInvalidModule
		}
		if !authorization.Permission(g.Permission).Valid() {
			return nil, apikeydomain.ErrInvalidLevel
		}
		grants = append(grants, apikeydomain.APIKeyPermission{
			ID:         s.genID.Generate(),
			APIKeyID:   id,
			Module:     g.Module,
			Permission: g.Permission,
			IsEnabled:  g.IsEnabled,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	plain, hash, err := generateAPIKey()
	if err != nil {
		return nil, err
	}

	key := &apikeydomain.APIKey{
		ID:        id,
		Name:      name,
		KeyHash:   hash,
		Scopes:    pq.StringArray(req.Scopes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if key.Scopes == nil {
		key.Scopes = pq.StringArray{}
	}

	if req.OwnerID != "" {
		ownerID, err := snowflake.ParseString(req.OwnerID)
		if err != nil {
			return nil, err
		}
		key.OwnerID = &ownerID
	}
	if req.CompanyID != "" {
		companyID, err := snowflake.ParseString(req.CompanyID)
		if err != nil {
			return nil, err
		}
		key.CompanyID = &companyID
	}

	if err := s.repo.Insert(ctx, s.db, key, grants); err != nil {
		return nil, err
	}

	s.log.Info("api key created", zap.String("api_key_id", key.ID.String()), zap.Int("grants", len(grants)))
	return &apikeydomain.SecretResponse{ID: key.ID.String(), Name: key.Name, APIKey: plain}, nil
}

func (s *Service) Revoke(ctx context.Context, id string) error {
	keyID, err := snowflake.ParseString(id)
	if err != nil {
		return apikeydomain.ErrNotFound
	}

	key, err := s.repo.FindByID(ctx, s.db, keyID)
	if err != nil {
		return err
	}
	if key == nil {
		return apikeydomain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, keyID)
}

func (s *Service) Authenticate(ctx context.Context, raw string) (*apikeydomain.APIKey, []apikeydomain.APIKeyPermission, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || !strings.HasPrefix(trimmed, apiKeyPrefix) {
		return nil, nil, apikeydomain.ErrInvalidKey
	}

	key, err := s.repo.FindByKeyHash(ctx, s.db, apikeydomain.HashAPIKey(trimmed))
	if err != nil {
		return nil, nil, err
	}
	if key == nil {
		return nil, nil, apikeydomain.ErrInvalidKey
	}

	grants, err := s.repo.ListGrants(ctx, s.db, key.ID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.repo.TouchLastUsed(ctx, s.db, key.ID); err != nil {
		s.log.Warn("touch api key last_used_at", zap.Error(err))
	}

	return key, grants, nil
}

func generateAPIKey() (string, string, error) {
	secret := make([]byte, apiKeySecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return "", "", err
	}
	plain := fmt.Sprintf("%s%s", apiKeyPrefix, hex.EncodeToString(secret))
	return plain, apikeydomain.HashAPIKey(plain), nil
}
