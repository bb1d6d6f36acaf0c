package client

import (
	"github.com/facturio/facturio/internal/client/repository"
	"github.com/facturio/facturio/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
