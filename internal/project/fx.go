package project

import (
	"github.com/facturio/facturio/internal/project/repository"
	"github.com/facturio/facturio/internal/project/service"
	"go.uber.org/fx"
)

var Module = fx.Module("project",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
