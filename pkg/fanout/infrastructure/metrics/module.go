package metrics

import (
	"go.uber.org/fx"

	metrics "github.com/tigerroll/fanout/pkg/fanout/core/metrics"
)

// Module provides the concrete metrics backends. Applications include either
// this module or the core fallback module, not both.
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		NewPrometheusRecorder,
		fx.As(new(metrics.BatchMetricRecorder)),
	)),
	fx.Provide(fx.Annotate(
		NewOpenTelemetryTracer,
		fx.As(new(metrics.Tracer)),
	)),
)
