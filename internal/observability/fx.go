package observability

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		NewMetrics,
		NewTracerProvider,
	),
	fx.Invoke(registerTracingShutdown),
)

func registerTracingShutdown(lc fx.Lifecycle, provider *sdktrace.TracerProvider) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return provider.Shutdown(ctx)
		},
	})
}
