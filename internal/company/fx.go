package company

import (
	"github.com/merchhaus/backoffice/internal/company/repository"
	"github.com/merchhaus/backoffice/internal/company/service"
	"go.uber.org/fx"
)

var Module = fx.Module("company.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
