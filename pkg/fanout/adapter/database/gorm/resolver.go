package gorm

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	gormdb "gorm.io/gorm"

	database "github.com/tigerroll/fanout/pkg/fanout/adapter/database"
	dbconfig "github.com/tigerroll/fanout/pkg/fanout/adapter/database/config"
	config "github.com/tigerroll/fanout/pkg/fanout/core/config"
	configbinder "github.com/tigerroll/fanout/pkg/fanout/support/util/configbinder"
)

// GormDBConnectionResolver is the GORM implementation of
// database.DBConnectionResolver. It routes a named connection to the driver
// provider whose Type matches the connection's configured type.
type GormDBConnectionResolver struct {
	dbProviders map[string]database.DBProvider
	cfg         *config.Config
}

// ResolverParams collects all registered DBProviders and the application
// configuration.
type ResolverParams struct {
	fx.In
	DBProviders []database.DBProvider `group:"db_providers"`
	Cfg         *config.Config
}

// NewGormDBConnectionResolver creates a new GormDBConnectionResolver from the
// providers registered in the db_providers group.
func NewGormDBConnectionResolver(p ResolverParams) *GormDBConnectionResolver {
	providerMap := make(map[string]database.DBProvider)
	for _, provider := range p.DBProviders {
		providerMap[provider.Type()] = provider
	}
	return &GormDBConnectionResolver{
		dbProviders: providerMap,
		cfg:         p.Cfg,
	}
}

// ResolveDBConnection resolves a database connection with the specified name.
func (r *GormDBConnectionResolver) ResolveDBConnection(ctx context.Context, name string) (*gormdb.DB, error) {
	rawConfig, ok := r.cfg.Fanout.AdapterConfigs[name]
	if !ok {
		return nil, fmt.Errorf("resolver: database configuration '%s' not found in fanout.database configs", name)
	}
	rawMap, ok := rawConfig.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("resolver: database configuration '%s' is not a mapping", name)
	}
	var dbCfg dbconfig.DatabaseConfig
	if err := configbinder.BindProperties(rawMap, &dbCfg); err != nil {
		return nil, fmt.Errorf("resolver: failed to decode database config for '%s': %w", name, err)
	}

	provider, ok := r.dbProviders[dbCfg.Type]
	if !ok {
		return nil, fmt.Errorf("resolver: no DBProvider registered for type '%s' (connection '%s')", dbCfg.Type, name)
	}
	return provider.GetConnection(name)
}

var _ database.DBConnectionResolver = (*GormDBConnectionResolver)(nil)
