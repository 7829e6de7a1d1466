package models

import "time"

type KeyValueRecord struct {
	Namespace string    `gorm:"column:namespace;type:text;primaryKey"`
	Key       string    `gorm:"column:key;type:text;primaryKey"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (KeyValueRecord) TableName() string {
	return "broker_session_kv"
}
