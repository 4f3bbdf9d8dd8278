// Package config defines the connection settings for one named database.
package config

// DatabaseConfig holds the connection details decoded from the application's
// `database:` section for a single named connection.
type DatabaseConfig struct {
	// Type selects the driver: "sqlite", "postgres", or "mysql".
	Type string `yaml:"type"`
	// Host and Port locate the server (unused for sqlite).
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// Database is the database name, or the file path for sqlite.
	Database string `yaml:"database"`
	// User and Password authenticate the connection.
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	// SSLMode is passed through to drivers that understand it.
	SSLMode string `yaml:"sslmode"`
}
