package pendingorder

import (
	"github.com/merchhaus/backoffice/internal/pendingorder/repository"
	"github.com/merchhaus/backoffice/internal/pendingorder/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pendingorder.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
