package metrics

import (
	"go.uber.org/fx"
)

// Module is an Fx module that provides metrics-related components.
var Module = fx.Options(
	// NoOp implementations are fallbacks; concrete backends provided by the
	// infrastructure layer take precedence.
	fx.Provide(fx.Annotate(
		NewNoOpBatchMetricRecorder,
		fx.As(new(BatchMetricRecorder)),
		fx.ResultTags(`optional:"true"`),
	)),
	fx.Provide(fx.Annotate(
		NewNoOpTracer,
		fx.As(new(Tracer)),
		fx.ResultTags(`optional:"true"`),
	)),
)
