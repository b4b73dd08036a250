package auth

import (
	"github.com/merchhaus/backoffice/internal/auth/repository"
	"github.com/merchhaus/backoffice/internal/auth/service"
	"github.com/merchhaus/backoffice/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(session.NewManager),
)
