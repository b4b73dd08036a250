package apikey

import (
	"github.com/merchhaus/backoffice/internal/apikey/repository"
	"github.com/merchhaus/backoffice/internal/apikey/service"
	"go.uber.org/fx"
)

var Module = fx.Module("apikey.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
