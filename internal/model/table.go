package model

import (
	"time"

	"github.com/samber/mo"

	"restaurant-floor-backend/internal/geom"
)

// TableStatus is the occupancy state of a table.
type TableStatus string

const (
	StatusFree     TableStatus = "free"
	StatusOccupied TableStatus = "occupied"
	StatusClosed   TableStatus = "closed"
)

// Valid reports whether s is a known status.
func (s TableStatus) Valid() bool {
	switch s {
	case StatusFree, StatusOccupied, StatusClosed:
		return true
	}
	return false
}

// TableSize drives the rendered footprint of a table.
type TableSize string

const (
	SizeSmall  TableSize = "small"
	SizeMedium TableSize = "medium"
	SizeLarge  TableSize = "large"
)

// DefaultTableSize is used when a table is created without a size.
const DefaultTableSize = SizeMedium

var tableSizePixels = map[TableSize]int{
	SizeSmall:  36,
	SizeMedium: 52,
	SizeLarge:  72,
}

// Valid reports whether s is a known size.
func (s TableSize) Valid() bool {
	_, ok := tableSizePixels[s]
	return ok
}

// Pixels returns the footprint diameter. Unknown sizes render as medium.
func (s TableSize) Pixels() int {
	if px, ok := tableSizePixels[s]; ok {
		return px
	}
	return tableSizePixels[DefaultTableSize]
}

// Table is a physical seating unit. ID doubles as the number staff see.
type Table struct {
	ID     int         `json:"id"`
	Zone   ZoneID      `json:"zone"`
	Status TableStatus `json:"status"`
	Guests int         `json:"guests"`
	// StartTime is present only while the table is occupied.
	StartTime mo.Option[time.Time] `json:"startTime"`
	Orders    []Order              `json:"orders"`
	// Position is absent until the table is placed; the hall view then
	// falls back to its default grid arrangement.
	Position mo.Option[geom.Point] `json:"position"`
	Size     TableSize             `json:"size"`
	WaiterID mo.Option[int]        `json:"waiterId"`
}

// OpenOrder returns the single not-yet-completed order, if any.
func (t Table) OpenOrder() (Order, int, bool) {
	for i, o := range t.Orders {
		if !o.IsCompleted {
			return o, i, true
		}
	}
	return Order{}, -1, false
}

// Elapsed returns how long the table has been occupied at now.
func (t Table) Elapsed(now time.Time) time.Duration {
	start, ok := t.StartTime.Get()
	if t.Status != StatusOccupied || !ok {
		return 0
	}
	return now.Sub(start)
}

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	c := t
	if t.Orders != nil {
		c.Orders = make([]Order, len(t.Orders))
		for i, o := range t.Orders {
			c.Orders[i] = o.Clone()
		}
	}
	return c
}
