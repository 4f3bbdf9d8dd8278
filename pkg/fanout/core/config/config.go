package config

// Package config provides structures and utilities for managing the fanout
// engine's configuration: the settings defaults consulted whenever a job's
// property bag leaves a batch option unset.

// EmbeddedConfig holds the content of the configuration file, typically passed
// from main.go when the YAML is compiled into the binary.
type EmbeddedConfig []byte

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the logging level (e.g. "INFO", "DEBUG").
	Level string `yaml:"level"`
}

// SystemConfig holds system-wide settings.
type SystemConfig struct {
	// Timezone is the application timezone (e.g. "UTC", "Asia/Tokyo").
	Timezone string `yaml:"timezone"`
	// Logging is the logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// BatchDefaults holds the settings defaults for batch evaluation. A value here
// is used only when the corresponding batch* property is absent from the job's
// property bag; caller-supplied values always win.
type BatchDefaults struct {
	// Size is the default split threshold and chunk size.
	Size int `yaml:"size"`
	// Queue and Connection are assigned to children and the batch itself.
	Queue      string `yaml:"queue"`
	Connection string `yaml:"connection"`
	// MaxAttempts is the default attempt limit for batch and children.
	MaxAttempts int `yaml:"max_attempts"`
	// BackoffSeconds is the default delay between retries.
	BackoffSeconds int `yaml:"backoff_seconds"`
	// TimeoutSeconds is the default per-job timeout.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// AllowFailures controls whether one failing child aborts the batch.
	// Stored as a pointer so an explicit `false` survives merging with the
	// built-in default of true.
	AllowFailures *bool `yaml:"allow_failures"`
}

// AllowFailuresOrDefault resolves the AllowFailures pointer; unset means true.
func (d BatchDefaults) AllowFailuresOrDefault() bool {
	if d.AllowFailures == nil {
		return true
	}
	return *d.AllowFailures
}

// InfrastructureConfig holds logical dependency settings for infrastructure
// components.
type InfrastructureConfig struct {
	// EngineDBRef names the database connection used by the database-backed
	// engine (a key of AdapterConfigs).
	EngineDBRef string `yaml:"engine_db_ref"`
}

// FanoutConfig holds all configuration under the "fanout" top-level key.
type FanoutConfig struct {
	// Batch contains the batch evaluation defaults.
	Batch BatchDefaults `yaml:"batch"`
	// System contains system-wide configurations.
	System SystemConfig `yaml:"system"`
	// Infrastructure contains infrastructure-related configurations.
	Infrastructure InfrastructureConfig `yaml:"infrastructure"`
	// AdapterConfigs holds configurations for database adapters, keyed by
	// connection name.
	AdapterConfigs map[string]interface{} `yaml:"database"`
}

// Config is the root structure for the entire application configuration.
type Config struct {
	Fanout FanoutConfig `yaml:"fanout"`
	// EmbeddedConfig holds configuration loaded from an embedded source, not from YAML.
	EmbeddedConfig EmbeddedConfig `yaml:"-"`
}

// NewConfig returns a new Config populated with built-in defaults.
func NewConfig() *Config {
	return &Config{
		Fanout: FanoutConfig{
			Batch: BatchDefaults{
				Size:           100,
				Queue:          "default",
				Connection:     "default",
				MaxAttempts:    1,
				BackoffSeconds: 0,
				TimeoutSeconds: 3600,
			},
			System: SystemConfig{
				Timezone: "UTC",
				Logging:  LoggingConfig{Level: "INFO"},
			},
			Infrastructure: InfrastructureConfig{
				EngineDBRef: "fanout",
			},
		},
	}
}
