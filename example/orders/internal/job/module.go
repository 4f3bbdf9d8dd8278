package job

import (
	"go.uber.org/fx"
)

// Module provides the example job.
var Module = fx.Options(
	fx.Provide(NewImportOrdersJob),
)
