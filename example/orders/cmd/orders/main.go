package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "embed"

	"go.uber.org/fx"

	model "github.com/tigerroll/fanout/pkg/fanout/core/domain/model"
	batch "github.com/tigerroll/fanout/pkg/fanout/engine/batch"
	memory "github.com/tigerroll/fanout/pkg/fanout/infrastructure/engine/memory"
	logger "github.com/tigerroll/fanout/pkg/fanout/support/util/logger"

	appjob "github.com/tigerroll/fanout/example/orders/internal/job"
)

// embeddedConfig holds the content of the application's YAML configuration.
//
//go:embed resources/application.yaml
var embeddedConfig []byte

// runExample registers the Fx hook that evaluates one oversized import and
// then runs the accepted batch on the in-memory engine.
func runExample(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	evaluator *batch.Evaluator,
	engine *memory.Engine,
	importJob *appjob.ImportOrdersJob,
	appCtx context.Context,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if r := recover(); r != nil {
						logger.Errorf("Panic recovered in example run: %v", r)
					}
					if err := shutdowner.Shutdown(); err != nil {
						logger.Errorf("Failed to shutdown application: %v", err)
					}
				}()
				evaluateAndRun(appCtx, evaluator, engine, importJob)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Infof("Application is shutting down.")
			return engine.Close()
		},
	})
}

// evaluateAndRun submits 25 orders with a batch size of 10 and replays the
// resulting children on the in-memory engine.
func evaluateAndRun(ctx context.Context, evaluator *batch.Evaluator, engine *memory.Engine, importJob *appjob.ImportOrdersJob) {
	orders := model.NewItemCollection()
	for i := 1; i <= 25; i++ {
		orders.Put(fmt.Sprintf("order-%04d", i), map[string]interface{}{
			"sku":      fmt.Sprintf("SKU-%d", i%7),
			"quantity": i,
		})
	}

	props := model.NewPropertyBag()
	props.Set(model.KeyAutoBatch, true)
	props.Set(model.KeyBatchSize, 10)
	props.Set(model.KeyBatchQueue, "imports")
	props.Set(model.KeyBatchIDKey, "orderIds")
	props.Set(model.DefaultItemsKey, orders)
	props.Set("tenant", "example")

	result, err := evaluator.Evaluate(ctx, importJob, props)
	if err != nil {
		logger.Errorf("Batch evaluation failed: %v", err)
		return
	}
	if !result.Batched {
		logger.Infof("Import ran below the threshold; no batch was created.")
		return
	}

	logger.Infof("Batch accepted with receipt %s. Replaying children...", result.Receipt.ID())
	err = engine.Run(ctx, result.Receipt.ID(), func(ctx context.Context, job *model.JobDescriptor) error {
		index, _ := job.Properties.Get(model.KeyBatchIndex)
		total, _ := job.Properties.Get(model.KeyBatchTotal)
		ids, _ := job.Properties.Get("orderIds")
		logger.Infof("Running %s (%v/%v) on queue '%s' with orders %v", job.Mapping, index, total, job.Queue, ids)
		return nil
	})
	if err != nil {
		logger.Errorf("Batch run failed: %v", err)
		return
	}
	logger.Infof("Batch completed.")
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Warnf("Received signal '%v'. Stopping...", sig)
		cancel()
	}()

	envFilePath := os.Getenv("ENV_FILE_PATH")
	if envFilePath == "" {
		envFilePath = ".env"
	}

	fxApp := fx.New(GetApplicationOptions(ctx, envFilePath, embeddedConfig)...)
	fxApp.Run()
	if fxApp.Err() != nil {
		logger.Fatalf("Application run failed: %v", fxApp.Err())
	}
	os.Exit(0)
}
