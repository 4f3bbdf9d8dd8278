package notification

import (
	"go.uber.org/fx"

	ports "github.com/tigerroll/fanout/pkg/fanout/core/ports"
)

// Module provides notification-related components.
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		NewLogNotifier,
		fx.As(new(ports.Notifier)),
	)),
)
