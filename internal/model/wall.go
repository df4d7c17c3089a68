package model

import "restaurant-floor-backend/internal/geom"

// DefaultWallThickness is the stroke width walls are drawn with.
const DefaultWallThickness = 8

// Wall is a static floor obstruction: a directed segment scoped to a zone.
type Wall struct {
	ID        int        `json:"id"`
	Start     geom.Point `json:"start"`
	End       geom.Point `json:"end"`
	Thickness float64    `json:"thickness"`
	Zone      ZoneID     `json:"zone"`
}

// Length returns the segment length.
func (w Wall) Length() float64 {
	return geom.Length(w.Start, w.End)
}

// SameSegment reports whether w and o occupy the identical directed segment in the same zone.
func (w Wall) SameSegment(o Wall) bool {
	return w.Zone == o.Zone && w.Start == o.Start && w.End == o.End
}
