package observability

import (
	"github.com/facturio/facturio/internal/observability/metrics"
	"github.com/facturio/facturio/internal/observability/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

// Module wires tracing and HTTP metrics.
var Module = fx.Module("observability",
	fx.Provide(
		tracing.NewProvider,
		metrics.NewHTTPMetrics,
	),
	fx.Invoke(ensureTracingProvider),
)

func ensureTracingProvider(_ *sdktrace.TracerProvider) {}
