package memory

import (
	"go.uber.org/fx"

	ports "github.com/tigerroll/fanout/pkg/fanout/core/ports"
)

// Module provides the in-memory Engine implementation.
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		NewEngine,
		fx.As(new(ports.Engine)),
	)),
)
