package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"go.uber.org/fx"

	"github.com/tigerroll/fanout/pkg/fanout/support/util/exception"
	"github.com/tigerroll/fanout/pkg/fanout/support/util/logger"
)

const moduleName = "config"

// ConfigParams defines the dependencies for NewConfigProvider.
type ConfigParams struct {
	fx.In
	EmbeddedConfig EmbeddedConfig
	EnvFilePath    string `name:"envFilePath" optional:"true"`
}

// loadConfig loads configuration in three layers: built-in defaults, the
// embedded YAML (environment-expanded), and environment variable overrides.
// Later layers win; the YAML only replaces fields it actually sets.
func loadConfig(envFilePath string, embeddedConfig EmbeddedConfig) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			logger.Warnf(".env file (%s) not found or could not be loaded: %v", envFilePath, err)
		}
	} else {
		if err := godotenv.Load(); err != nil {
			logger.Debugf(".env file not found or could not be loaded: %v", err)
		}
	}

	cfg := NewConfig()

	if len(embeddedConfig) > 0 {
		expanded, err := NewOsEnvironmentExpander().Expand(embeddedConfig)
		if err != nil {
			return nil, exception.NewBatchError(moduleName, "failed to expand environment variables in embedded config", err)
		}
		if err := yaml.Unmarshal(expanded, cfg); err != nil {
			return nil, exception.NewBatchError(moduleName, "failed to unmarshal embedded config", err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides individual settings from well-known FANOUT_*
// environment variables. Unparsable numeric values are ignored with a warning
// rather than failing the load.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FANOUT_LOG_LEVEL"); v != "" {
		cfg.Fanout.System.Logging.Level = v
	}
	if v := os.Getenv("FANOUT_TIMEZONE"); v != "" {
		cfg.Fanout.System.Timezone = v
	}
	if v := os.Getenv("FANOUT_BATCH_QUEUE"); v != "" {
		cfg.Fanout.Batch.Queue = v
	}
	if v := os.Getenv("FANOUT_BATCH_CONNECTION"); v != "" {
		cfg.Fanout.Batch.Connection = v
	}
	overrideEnvInt("FANOUT_BATCH_SIZE", &cfg.Fanout.Batch.Size)
	overrideEnvInt("FANOUT_BATCH_MAX_ATTEMPTS", &cfg.Fanout.Batch.MaxAttempts)
	overrideEnvInt("FANOUT_BATCH_BACKOFF_SECONDS", &cfg.Fanout.Batch.BackoffSeconds)
	overrideEnvInt("FANOUT_BATCH_TIMEOUT_SECONDS", &cfg.Fanout.Batch.TimeoutSeconds)
	if v := os.Getenv("FANOUT_BATCH_ALLOW_FAILURES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Fanout.Batch.AllowFailures = &b
		} else {
			logger.Warnf("Ignoring unparsable FANOUT_BATCH_ALLOW_FAILURES=%q: %v", v, err)
		}
	}
}

func overrideEnvInt(name string, target *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warnf("Ignoring unparsable %s=%q: %v", name, v, err)
		return
	}
	*target = n
}

// NewConfigProvider is an Fx provider that loads and provides *Config.
// It also sets the global logger level from the loaded configuration.
//
// Parameters:
//
//	params: ConfigParams containing the embedded config and optional env file path.
//
// Returns:
//
//	A pointer to the initialized Config and an error if loading fails.
func NewConfigProvider(params ConfigParams) (*Config, error) {
	cfg, err := loadConfig(params.EnvFilePath, params.EmbeddedConfig)
	if err != nil {
		return nil, err
	}

	logger.SetLogLevel(cfg.Fanout.System.Logging.Level)
	logger.Infof("Log level set to: %s", cfg.Fanout.System.Logging.Level)

	return cfg, nil
}

// LoadConfig loads configuration from the embedded bytes and environment.
// It is the non-Fx entry point, expected to be called once during startup.
func LoadConfig(envFilePath string, embeddedConfig EmbeddedConfig) (*Config, error) {
	return loadConfig(envFilePath, embeddedConfig)
}
