// Package sqlite provides a GORM DBProvider implementation for SQLite
// databases.
package sqlite

import (
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	database "github.com/tigerroll/fanout/pkg/fanout/adapter/database"
	dbconfig "github.com/tigerroll/fanout/pkg/fanout/adapter/database/config"
	gormadapter "github.com/tigerroll/fanout/pkg/fanout/adapter/database/gorm"
	config "github.com/tigerroll/fanout/pkg/fanout/core/config"
)

func init() {
	gormadapter.RegisterDialector("sqlite", func(cfg dbconfig.DatabaseConfig) (gorm.Dialector, error) {
		if cfg.Database == "" {
			return nil, errors.New("SQLite database path cannot be empty")
		}
		// The SQLite dialector takes the file path (or ":memory:") directly.
		return sqlite.Open(cfg.Database), nil
	})
}

// SQLiteDBProvider implements database.DBProvider for SQLite connections.
type SQLiteDBProvider struct {
	*gormadapter.BaseProvider
}

// NewProvider creates a new DBProvider for SQLite. It is intended to be used
// with fx.Provide.
func NewProvider(cfg *config.Config) database.DBProvider {
	return &SQLiteDBProvider{BaseProvider: gormadapter.NewBaseProvider(cfg, "sqlite")}
}
