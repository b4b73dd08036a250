package privacyrule

import (
	"github.com/merchhaus/backoffice/internal/privacyrule/repository"
	"github.com/merchhaus/backoffice/internal/privacyrule/service"
	"go.uber.org/fx"
)

var Module = fx.Module("privacyrule.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
