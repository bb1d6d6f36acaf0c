package settings

import (
	"github.com/facturio/facturio/internal/settings/repository"
	"github.com/facturio/facturio/internal/settings/service"
	"go.uber.org/fx"
)

var Module = fx.Module("settings.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
