package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jiaming2012/broker-session/src/session-api/models"
)

// DatabaseKeyValueStore stores values in the broker_session_kv table. Each store sees only the
// rows of its namespace.
type DatabaseKeyValueStore struct {
	db        *gorm.DB
	namespace string
}

func (s *DatabaseKeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	var record models.KeyValueRecord

	err := s.db.WithContext(ctx).Where(s.conditions(key)).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("DatabaseKeyValueStore.Get: failed to read %s: %w", key, err)
	}

	return record.Value, true, nil
}

func (s *DatabaseKeyValueStore) Set(ctx context.Context, key, value string) error {
	record := models.KeyValueRecord{
		Namespace: s.namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("DatabaseKeyValueStore.Set: failed to write %s: %w", key, err)
	}

	return nil
}

func (s *DatabaseKeyValueStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("DatabaseKeyValueStore.Close: %w", err)
	}

	return sqlDB.Close()
}

func (s *DatabaseKeyValueStore) conditions(key string) map[string]interface{} {
	return map[string]interface{}{
		"namespace": s.namespace,
		"key":       key,
	}
}

func NewDatabaseKeyValueStore(db *gorm.DB, namespace string) *DatabaseKeyValueStore {
	if namespace == "" {
		namespace = models.DefaultNamespace
	}

	return &DatabaseKeyValueStore{
		db:        db,
		namespace: namespace,
	}
}
