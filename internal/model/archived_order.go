package model

import "time"

// ArchivedOrder is the append-only log of completed orders (cold table),
// written alongside the snapshot for reporting.
type ArchivedOrder struct {
	OrderID     int       `gorm:"primaryKey;autoIncrement:false"`
	TableID     int       `gorm:"not null;index"`
	WaiterID    *int      `gorm:"index"`
	TotalAmount int64     `gorm:"not null"`
	ItemCount   int       `gorm:"not null"`
	OrderedAt   time.Time `gorm:"not null;index"`
	Payload     []byte    `gorm:"not null"` // JSON-encoded Order
	ArchivedAt  time.Time `gorm:"not null"`
}
