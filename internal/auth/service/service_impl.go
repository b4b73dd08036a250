package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/merchhaus/backoffice/internal/auth/domain"
	"github.com/merchhaus/backoffice/internal/auth/password"
	"github.com/merchhaus/backoffice/internal/clock"
	"github.com/merchhaus/backoffice/internal/config"
	userdomain "github.com/merchhaus/backoffice/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sessionTokenBytes = 32

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Cfg      config.Config
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     authdomain.Repository
	UserRepo userdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	cfg      config.Config
	genID    *snowflake.Node
	clock    clock.Clock
	repo     authdomain.Repository
	userRepo userdomain.Repository
}

func New(p Params) authdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("auth.service"),
		cfg:      p.Cfg,
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		userRepo: p.UserRepo,
	}
}

func (s *Service) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsGhost || user.PasswordHash == "" {
		return nil, authdomain.ErrInvalidCredentials
	}
	if !password.Verify(req.Password, user.PasswordHash) {
		return nil, authdomain.ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	session := &authdomain.Session{
		ID:        s.genID.Generate(),
		UserID:    user.ID,
		TokenHash: hashToken(token),
		ExpiresAt: now.Add(s.cfg.SessionTTL),
		CreatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, session); err != nil {
		return nil, err
	}

	s.log.Info("session issued", zap.String("user_id", user.ID.String()))
	return &authdomain.LoginResult{Token: token, ExpiresAt: session.ExpiresAt, User: user}, nil
}

func (s *Service) Authenticate(ctx context.Context, token string) (*userdomain.User, error) {
	session, err := s.repo.FindByTokenHash(ctx, s.db, hashToken(token))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, authdomain.ErrInvalidCredentials
	}
	if s.clock.Now().UTC().After(session.ExpiresAt) {
		_ = s.repo.DeleteByTokenHash(ctx, s.db, session.TokenHash)
		return nil, authdomain.ErrSessionExpired
	}

	user, err := s.userRepo.FindByID(ctx, s.db, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.repo.DeleteByTokenHash(ctx, s.db, hashToken(token))
}

func newToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
