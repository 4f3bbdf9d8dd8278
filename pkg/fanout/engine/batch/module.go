package batch

import "go.uber.org/fx"

// Module is an Fx module that provides the batching decision engine.
var Module = fx.Options(
	fx.Provide(NewDispatcher),
	fx.Provide(NewEvaluator),
)
