package main

import (
	"context"

	"go.uber.org/fx"

	config "github.com/tigerroll/fanout/pkg/fanout/core/config"
	metrics "github.com/tigerroll/fanout/pkg/fanout/core/metrics"
	ports "github.com/tigerroll/fanout/pkg/fanout/core/ports"
	batch "github.com/tigerroll/fanout/pkg/fanout/engine/batch"
	memory "github.com/tigerroll/fanout/pkg/fanout/infrastructure/engine/memory"
	notification "github.com/tigerroll/fanout/pkg/fanout/listener/notification"
	logger "github.com/tigerroll/fanout/pkg/fanout/support/util/logger"

	appjob "github.com/tigerroll/fanout/example/orders/internal/job"
)

// GetApplicationOptions builds the uber-fx options for the example application.
func GetApplicationOptions(appCtx context.Context, envFilePath string, embeddedConfig config.EmbeddedConfig) []fx.Option {
	var options []fx.Option

	options = append(options, fx.Supply(
		embeddedConfig,
		fx.Annotate(envFilePath, fx.ResultTags(`name:"envFilePath"`)),
		fx.Annotate(appCtx, fx.As(new(context.Context)), fx.ResultTags(`name:"appCtx"`)),
	))
	options = append(options, logger.Module)
	options = append(options, config.Module)
	options = append(options, metrics.Module)
	options = append(options, notification.Module)
	// The concrete in-memory engine is provided directly so the example can
	// drive Run after submitting; the batching core only sees ports.Engine.
	options = append(options, fx.Provide(
		memory.NewEngine,
		func(e *memory.Engine) ports.Engine { return e },
	))
	options = append(options, batch.Module)
	options = append(options, appjob.Module)
	options = append(options, fx.Invoke(fx.Annotate(runExample, fx.ParamTags("", "", "", "", "", `name:"appCtx"`))))

	return options
}
