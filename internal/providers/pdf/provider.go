package pdf

import (
	"context"

	"go.uber.org/fx"
)

type Renderer interface {
	RenderInvoice(ctx context.Context, data InvoiceData) ([]byte, error)
}

var Module = fx.Module("pdf",
	fx.Provide(New),
)
