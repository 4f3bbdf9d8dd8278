// Package gorm implements the DBProvider abstraction on top of GORM with a
// registry of per-driver dialector factories.
package gorm

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	database "github.com/tigerroll/fanout/pkg/fanout/adapter/database"
	dbconfig "github.com/tigerroll/fanout/pkg/fanout/adapter/database/config"
	config "github.com/tigerroll/fanout/pkg/fanout/core/config"
	configbinder "github.com/tigerroll/fanout/pkg/fanout/support/util/configbinder"
	logger "github.com/tigerroll/fanout/pkg/fanout/support/util/logger"
)

// DialectorFactory generates a gorm.Dialector from a DatabaseConfig.
type DialectorFactory func(cfg dbconfig.DatabaseConfig) (gorm.Dialector, error)

var (
	dialectorRegistry = make(map[string]DialectorFactory)
	dialectorMutex    sync.RWMutex
)

// RegisterDialector registers a DialectorFactory for the given driver type.
// Driver packages call this from init.
func RegisterDialector(dbType string, factory DialectorFactory) {
	dialectorMutex.Lock()
	defer dialectorMutex.Unlock()
	if _, exists := dialectorRegistry[dbType]; exists {
		logger.Warnf("Dialector for type '%s' already registered. Overwriting.", dbType)
	}
	dialectorRegistry[dbType] = factory
}

// GetDialectorFactory retrieves the DialectorFactory for the given driver type.
func GetDialectorFactory(dbType string) (DialectorFactory, error) {
	dialectorMutex.RLock()
	defer dialectorMutex.RUnlock()
	factory, ok := dialectorRegistry[dbType]
	if !ok {
		return nil, fmt.Errorf("no dialector registered for database type: %s", dbType)
	}
	return factory, nil
}

// BaseProvider provides the shared connection management for driver-specific
// providers.
type BaseProvider struct {
	cfg         *config.Config
	dbType      string
	connections map[string]*gorm.DB
	mu          sync.RWMutex
}

// NewBaseProvider creates a new BaseProvider for the given driver type.
func NewBaseProvider(cfg *config.Config, dbType string) *BaseProvider {
	return &BaseProvider{
		cfg:         cfg,
		dbType:      dbType,
		connections: make(map[string]*gorm.DB),
	}
}

// Type returns the driver type.
func (p *BaseProvider) Type() string {
	return p.dbType
}

// GetConnection retrieves an existing connection or establishes a new one.
func (p *BaseProvider) GetConnection(name string) (*gorm.DB, error) {
	p.mu.RLock()
	conn, ok := p.connections[name]
	p.mu.RUnlock()
	if ok {
		return conn, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if conn, ok = p.connections[name]; ok {
		return conn, nil
	}
	return p.createAndStoreConnection(name)
}

func (p *BaseProvider) createAndStoreConnection(name string) (*gorm.DB, error) {
	rawConfig, ok := p.cfg.Fanout.AdapterConfigs[name]
	if !ok {
		return nil, fmt.Errorf("database configuration '%s' not found in fanout.database configs", name)
	}

	var dbCfg dbconfig.DatabaseConfig
	rawMap, ok := rawConfig.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("database configuration '%s' is not a mapping", name)
	}
	if err := configbinder.BindProperties(rawMap, &dbCfg); err != nil {
		return nil, fmt.Errorf("failed to decode database config for '%s': %w", name, err)
	}

	if dbCfg.Type != p.dbType {
		return nil, fmt.Errorf("provider type mismatch: expected '%s', got '%s' for connection '%s'", p.dbType, dbCfg.Type, name)
	}

	factory, err := GetDialectorFactory(dbCfg.Type)
	if err != nil {
		return nil, err
	}
	dialector, err := factory(dbCfg)
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection '%s': %w", name, err)
	}

	p.connections[name] = gormDB
	logger.Infof("Established new DB connection: %s (%s)", name, p.dbType)
	return gormDB, nil
}

// Close closes every connection held by the provider.
func (p *BaseProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for name, conn := range p.connections {
		sqlDB, err := conn.DB()
		if err != nil {
			logger.Errorf("Failed to obtain underlying connection for '%s': %v", name, err)
			continue
		}
		if err := sqlDB.Close(); err != nil {
			logger.Errorf("Failed to close connection '%s': %v", name, err)
		}
	}
	p.connections = make(map[string]*gorm.DB)
	return nil
}

var _ database.DBProvider = (*BaseProvider)(nil)
