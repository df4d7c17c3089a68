package model

// ZoneID identifies a spatial partition of the hall.
type ZoneID string

const (
	ZoneBowling   ZoneID = "bowling"
	ZoneBilliards ZoneID = "billiards"
	ZoneFree      ZoneID = "free"
)

// Zone describes a hall zone for display.
type Zone struct {
	ID   ZoneID `json:"id"`
	Name string `json:"name"`
}

// Zones lists every zone in display order.
var Zones = []Zone{
	{ID: ZoneBowling, Name: "Bowling"},
	{ID: ZoneBilliards, Name: "Billiards"},
	{ID: ZoneFree, Name: "Free zone"},
}

// Valid reports whether z is one of the known zones.
func (z ZoneID) Valid() bool {
	switch z {
	case ZoneBowling, ZoneBilliards, ZoneFree:
		return true
	}
	return false
}
