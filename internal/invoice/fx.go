package invoice

import (
	"github.com/facturio/facturio/internal/invoice/repository"
	"github.com/facturio/facturio/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice",
	fx.Provide(
		repository.Provide,
		repository.ProvideCounter,
		service.New,
	),
)
