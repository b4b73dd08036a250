package user

import (
	"github.com/merchhaus/backoffice/internal/user/repository"
	"github.com/merchhaus/backoffice/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
