// Package postgres provides a GORM DBProvider implementation for PostgreSQL
// databases.
package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	database "github.com/tigerroll/fanout/pkg/fanout/adapter/database"
	dbconfig "github.com/tigerroll/fanout/pkg/fanout/adapter/database/config"
	gormadapter "github.com/tigerroll/fanout/pkg/fanout/adapter/database/gorm"
	config "github.com/tigerroll/fanout/pkg/fanout/core/config"
)

func init() {
	gormadapter.RegisterDialector("postgres", func(cfg dbconfig.DatabaseConfig) (gorm.Dialector, error) {
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, sslMode)
		return postgres.Open(dsn), nil
	})
}

// PostgresDBProvider implements database.DBProvider for PostgreSQL connections.
type PostgresDBProvider struct {
	*gormadapter.BaseProvider
}

// NewProvider creates a new DBProvider for PostgreSQL. It is intended to be
// used with fx.Provide.
func NewProvider(cfg *config.Config) database.DBProvider {
	return &PostgresDBProvider{BaseProvider: gormadapter.NewBaseProvider(cfg, "postgres")}
}
