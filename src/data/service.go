package data

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jiaming2012/broker-session/src/dbutils"
	"github.com/jiaming2012/broker-session/src/session-api/models"
	"github.com/jiaming2012/broker-session/src/utils"
)

func initPostgresFromEnv() (*gorm.DB, error) {
	var params [5]string
	for i, key := range []string{"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB"} {
		value, err := utils.GetEnv(key)
		if err != nil {
			return nil, fmt.Errorf("postgres dsn is blank and %w", err)
		}
		params[i] = value
	}

	return dbutils.InitPostgres(params[0], params[1], params[2], params[3], params[4])
}

// NewKeyValueStore opens the store selected by cfg.Driver. The returned func releases its
// resources.
func NewKeyValueStore(ctx context.Context, cfg models.StorageConfigYAML) (models.IKeyValueStore, func() error, error) {
	if err := cfg.Driver.Validate(); err != nil {
		return nil, nil, fmt.Errorf("NewKeyValueStore: %w", err)
	}

	var db *gorm.DB
	var err error

	switch cfg.Driver {
	case models.StorageDriverMemory:
		log.Info("NewKeyValueStore: using in-memory store, session will not survive a restart")
		return NewMemoryKeyValueStore(), func() error { return nil }, nil
	case models.StorageDriverSqlite:
		db, err = dbutils.InitSqlite(cfg.DSN)
	case models.StorageDriverPostgres:
		if cfg.DSN != "" {
			db, err = dbutils.InitPostgresWithUrl(cfg.DSN)
		} else {
			db, err = initPostgresFromEnv()
		}
	}

	if err != nil {
		return nil, nil, fmt.Errorf("NewKeyValueStore: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("NewKeyValueStore: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("NewKeyValueStore: failed to reach %s: %w", cfg.Driver, err)
	}

	log.Infof("NewKeyValueStore: using %s store, namespace %s", cfg.Driver, cfg.Namespace)

	store := NewDatabaseKeyValueStore(db, cfg.Namespace)
	return store, store.Close, nil
}
