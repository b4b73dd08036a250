package campaign

import (
	"github.com/merchhaus/backoffice/internal/campaign/repository"
	"github.com/merchhaus/backoffice/internal/campaign/service"
	"go.uber.org/fx"
)

var Module = fx.Module("campaign.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
