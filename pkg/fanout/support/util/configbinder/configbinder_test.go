package configbinder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	configbinder "github.com/tigerroll/fanout/pkg/fanout/support/util/configbinder"
)

type sampleConfig struct {
	Type     string `yaml:"type"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
}

func TestBindProperties_DecodesYamlTags(t *testing.T) {
	var cfg sampleConfig
	err := configbinder.BindProperties(map[string]interface{}{
		"type":     "postgres",
		"port":     5432,
		"database": "fanout",
	}, &cfg)

	assert.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Type)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "fanout", cfg.Database)
}

func TestBindProperties_WeaklyTypedInput(t *testing.T) {
	var cfg sampleConfig
	err := configbinder.BindProperties(map[string]interface{}{
		"port": "5432",
	}, &cfg)

	assert.NoError(t, err)
	assert.Equal(t, 5432, cfg.Port)
}

func TestBindProperties_UnknownKeysAreIgnored(t *testing.T) {
	var cfg sampleConfig
	err := configbinder.BindProperties(map[string]interface{}{
		"type":    "sqlite",
		"unknown": true,
	}, &cfg)

	assert.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Type)
}
