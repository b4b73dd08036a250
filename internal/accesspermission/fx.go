package accesspermission

import (
	"github.com/merchhaus/backoffice/internal/accesspermission/repository"
	"github.com/merchhaus/backoffice/internal/accesspermission/service"
	"go.uber.org/fx"
)

var Module = fx.Module("accesspermission.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
