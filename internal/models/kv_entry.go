package models

import (
	"time"

	"gorm.io/datatypes"
)

// KVEntry is one row of the local key/value store.
type KVEntry struct {
	Key       string         `gorm:"primaryKey;size:255"`
	Value     datatypes.JSON `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string { return "kv_entries" }
