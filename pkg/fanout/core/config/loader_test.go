package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	config "github.com/tigerroll/fanout/pkg/fanout/core/config"
)

func TestLoadConfig_DefaultsWithoutYAML(t *testing.T) {
	cfg, err := config.LoadConfig("", nil)

	assert.NoError(t, err)
	assert.Equal(t, 100, cfg.Fanout.Batch.Size)
	assert.Equal(t, "default", cfg.Fanout.Batch.Queue)
	assert.Equal(t, "default", cfg.Fanout.Batch.Connection)
	assert.Equal(t, 1, cfg.Fanout.Batch.MaxAttempts)
	assert.Equal(t, 3600, cfg.Fanout.Batch.TimeoutSeconds)
	assert.True(t, cfg.Fanout.Batch.AllowFailuresOrDefault())
	assert.Equal(t, "INFO", cfg.Fanout.System.Logging.Level)
	assert.Equal(t, "fanout", cfg.Fanout.Infrastructure.EngineDBRef)
}

func TestLoadConfig_YAMLOverridesDefaults(t *testing.T) {
	yamlConfig := []byte(`
fanout:
  batch:
    size: 250
    queue: imports
    allow_failures: false
  system:
    logging:
      level: DEBUG
`)

	cfg, err := config.LoadConfig("", yamlConfig)

	assert.NoError(t, err)
	assert.Equal(t, 250, cfg.Fanout.Batch.Size)
	assert.Equal(t, "imports", cfg.Fanout.Batch.Queue)
	assert.False(t, cfg.Fanout.Batch.AllowFailuresOrDefault())
	assert.Equal(t, "DEBUG", cfg.Fanout.System.Logging.Level)
	// Fields the YAML does not set keep their defaults.
	assert.Equal(t, "default", cfg.Fanout.Batch.Connection)
	assert.Equal(t, 3600, cfg.Fanout.Batch.TimeoutSeconds)
}

func TestLoadConfig_EnvironmentVariableExpansion(t *testing.T) {
	t.Setenv("ORDERS_QUEUE", "orders-high")
	yamlConfig := []byte(`
fanout:
  batch:
    queue: ${ORDERS_QUEUE}
`)

	cfg, err := config.LoadConfig("", yamlConfig)

	assert.NoError(t, err)
	assert.Equal(t, "orders-high", cfg.Fanout.Batch.Queue)
}

func TestLoadConfig_EnvOverridesWinOverYAML(t *testing.T) {
	t.Setenv("FANOUT_BATCH_SIZE", "42")
	t.Setenv("FANOUT_BATCH_ALLOW_FAILURES", "false")
	t.Setenv("FANOUT_LOG_LEVEL", "WARN")
	yamlConfig := []byte(`
fanout:
  batch:
    size: 250
`)

	cfg, err := config.LoadConfig("", yamlConfig)

	assert.NoError(t, err)
	assert.Equal(t, 42, cfg.Fanout.Batch.Size)
	assert.False(t, cfg.Fanout.Batch.AllowFailuresOrDefault())
	assert.Equal(t, "WARN", cfg.Fanout.System.Logging.Level)
}

func TestLoadConfig_UnparsableEnvOverrideIsIgnored(t *testing.T) {
	t.Setenv("FANOUT_BATCH_SIZE", "many")

	cfg, err := config.LoadConfig("", nil)

	assert.NoError(t, err)
	assert.Equal(t, 100, cfg.Fanout.Batch.Size)
}

func TestLoadConfig_MalformedYAMLFails(t *testing.T) {
	_, err := config.LoadConfig("", []byte("fanout: [not a mapping"))

	assert.Error(t, err)
}

func TestLoadConfig_DatabaseSection(t *testing.T) {
	yamlConfig := []byte(`
fanout:
  database:
    fanout:
      type: sqlite
      database: ":memory:"
`)

	cfg, err := config.LoadConfig("", yamlConfig)

	assert.NoError(t, err)
	raw, ok := cfg.Fanout.AdapterConfigs["fanout"]
	assert.True(t, ok)
	section, ok := raw.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "sqlite", section["type"])
}
