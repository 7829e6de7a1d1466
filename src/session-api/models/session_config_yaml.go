package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultSwitchLatency  = 600 * time.Millisecond
	DefaultRefreshLatency = 800 * time.Millisecond
	DefaultPort           = "8080"
	DefaultNamespace      = "default"
	DefaultServiceName    = "broker-session"
)

type StorageDriver string

const (
	StorageDriverMemory   StorageDriver = "memory"
	StorageDriverSqlite   StorageDriver = "sqlite"
	StorageDriverPostgres StorageDriver = "postgres"
)

func (d StorageDriver) Validate() error {
	switch d {
	case StorageDriverMemory:
		break
	case StorageDriverSqlite:
		break
	case StorageDriverPostgres:
		break
	default:
		return fmt.Errorf("StorageDriver: unsupported driver: %s", d)
	}

	return nil
}

type LogConfigYAML struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type StorageConfigYAML struct {
	Driver    StorageDriver `yaml:"driver"`
	DSN       string        `yaml:"dsn"`
	Namespace string        `yaml:"namespace"`
}

type SessionLatencyConfigYAML struct {
	SwitchLatency  time.Duration `yaml:"switch_latency"`
	RefreshLatency time.Duration `yaml:"refresh_latency"`
}

type ServerConfigYAML struct {
	Port string `yaml:"port"`
}

type TelemetryConfigYAML struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

type SessionConfigYAML struct {
	Log       LogConfigYAML            `yaml:"log"`
	Storage   StorageConfigYAML        `yaml:"storage"`
	Session   SessionLatencyConfigYAML `yaml:"session"`
	Server    ServerConfigYAML         `yaml:"server"`
	Telemetry TelemetryConfigYAML      `yaml:"telemetry"`
}

func (c *SessionConfigYAML) ApplyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 50
	}

	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}

	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 28
	}

	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverSqlite
	}

	if c.Storage.DSN == "" && c.Storage.Driver == StorageDriverSqlite {
		c.Storage.DSN = "data/broker-session.db"
	}

	if c.Storage.Namespace == "" {
		c.Storage.Namespace = DefaultNamespace
	}

	if c.Session.SwitchLatency == 0 {
		c.Session.SwitchLatency = DefaultSwitchLatency
	}

	if c.Session.RefreshLatency == 0 {
		c.Session.RefreshLatency = DefaultRefreshLatency
	}

	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}

	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = DefaultServiceName
	}
}

func (c *SessionConfigYAML) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
		break
	default:
		return fmt.Errorf("SessionConfigYAML: unsupported log level: %s", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
		break
	default:
		return fmt.Errorf("SessionConfigYAML: unsupported log format: %s", c.Log.Format)
	}

	if err := c.Storage.Driver.Validate(); err != nil {
		return fmt.Errorf("SessionConfigYAML: %w", err)
	}

	// postgres falls back to the POSTGRES_* connection variables when dsn is blank
	if c.Storage.Driver == StorageDriverSqlite && c.Storage.DSN == "" {
		return fmt.Errorf("SessionConfigYAML: storage dsn is required for driver %s", c.Storage.Driver)
	}

	if c.Session.SwitchLatency < 0 || c.Session.RefreshLatency < 0 {
		return fmt.Errorf("SessionConfigYAML: latencies cannot be negative")
	}

	return nil
}

func NewDefaultSessionConfig() *SessionConfigYAML {
	cfg := &SessionConfigYAML{}
	cfg.ApplyDefaults()
	return cfg
}
