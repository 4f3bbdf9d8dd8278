package gorm

import (
	"go.uber.org/fx"

	database "github.com/tigerroll/fanout/pkg/fanout/adapter/database"
)

// Module exports the shared gorm adapter components (excluding concrete DB
// providers, which live in the per-driver packages).
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		NewGormDBConnectionResolver,
		fx.As(new(database.DBConnectionResolver)),
	)),
)
