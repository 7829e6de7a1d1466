package utils

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/jiaming2012/broker-session/src/session-api/models"
)

const (
	PortEnv     = "BROKER_SESSION_PORT"
	DBDriverEnv = "BROKER_SESSION_DB_DRIVER"
	DBDsnEnv    = "BROKER_SESSION_DB_DSN"
	LogLevelEnv = "BROKER_SESSION_LOG_LEVEL"
)

// LoadSessionConfig reads the yaml file at path, applies environment overrides and defaults,
// then validates the result. An empty path yields the defaults.
func LoadSessionConfig(path string) (*models.SessionConfigYAML, error) {
	cfg := &models.SessionConfigYAML{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadSessionConfig: failed to read config: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("LoadSessionConfig: failed to unmarshal config: %w", err)
		}

		log.Debugf("LoadSessionConfig: loaded %s", path)
	}

	applyEnvOverrides(cfg)
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("LoadSessionConfig: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *models.SessionConfigYAML) {
	if port, err := GetEnv(PortEnv); err == nil {
		cfg.Server.Port = port
	}

	if driver, err := GetEnv(DBDriverEnv); err == nil {
		cfg.Storage.Driver = models.StorageDriver(driver)
	}

	if dsn, err := GetEnv(DBDsnEnv); err == nil {
		cfg.Storage.DSN = dsn
	}

	if level, err := GetEnv(LogLevelEnv); err == nil {
		cfg.Log.Level = level
	}
}
