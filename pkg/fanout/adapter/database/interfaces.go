// Package database defines the provider abstraction over GORM connections.
package database

import (
	"context"

	"gorm.io/gorm"
)

// DBProviderGroup is the fx value group name under which driver-specific
// DBProviders are collected.
const DBProviderGroup = "db_providers"

// DBConnectionResolver resolves a named database configuration to a live
// connection by selecting the matching driver provider.
type DBConnectionResolver interface {
	ResolveDBConnection(ctx context.Context, name string) (*gorm.DB, error)
}

// DBProvider yields shared *gorm.DB connections for named database
// configurations. Implementations cache connections per name.
type DBProvider interface {
	// Type returns the driver type this provider serves.
	Type() string
	// GetConnection retrieves an existing connection or establishes a new one
	// for the named configuration.
	GetConnection(name string) (*gorm.DB, error)
	// Close closes every connection held by the provider.
	Close() error
}
