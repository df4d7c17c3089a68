package model

import "time"

// SnapshotRecord is one key in the local key-value store. Payload holds a
// serialized floor snapshot.
type SnapshotRecord struct {
	Key       string    `gorm:"primaryKey;size:128"`
	Payload   []byte    `gorm:"not null"`
	Version   int       `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
