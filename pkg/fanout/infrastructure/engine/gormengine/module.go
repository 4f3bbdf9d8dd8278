package gormengine

import (
	"context"

	"go.uber.org/fx"

	database "github.com/tigerroll/fanout/pkg/fanout/adapter/database"
	config "github.com/tigerroll/fanout/pkg/fanout/core/config"
	ports "github.com/tigerroll/fanout/pkg/fanout/core/ports"
	exception "github.com/tigerroll/fanout/pkg/fanout/support/util/exception"
)

// NewEngineFromConfig builds the database-backed engine on the connection
// named by fanout.infrastructure.engine_db_ref.
func NewEngineFromConfig(cfg *config.Config, resolver database.DBConnectionResolver) (*Engine, error) {
	ref := cfg.Fanout.Infrastructure.EngineDBRef
	if ref == "" {
		return nil, exception.NewBatchErrorf(moduleName, "fanout.infrastructure.engine_db_ref is not configured")
	}
	db, err := resolver.ResolveDBConnection(context.Background(), ref)
	if err != nil {
		return nil, exception.NewBatchErrorf(moduleName, "failed to resolve engine database '%s': %v", ref, err)
	}
	return NewEngine(db)
}

// Module exports the database-backed Engine for dependency injection.
var Module = fx.Options(
	fx.Provide(
		fx.Annotate(
			NewEngineFromConfig,
			fx.As(new(ports.Engine)),
		),
	),
)
