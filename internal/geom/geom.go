package geom

import "math"

// Point is a position on the hall canvas, in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Bounds is the inclusive [0, MaxX] x [0, MaxY] area a table origin may occupy.
type Bounds struct {
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// Clamp pulls p inside b, axis by axis.
func (b Bounds) Clamp(p Point) Point {
	return Point{X: Clamp(p.X, 0, b.MaxX), Y: Clamp(p.Y, 0, b.MaxY)}
}

// Contains reports whether p already lies inside b.
func (b Bounds) Contains(p Point) bool {
	return p.X >= 0 && p.X <= b.MaxX && p.Y >= 0 && p.Y <= b.MaxY
}

// Snap rounds v to the nearest multiple of pitch. Halves round away from zero.
// A non-positive pitch disables snapping.
func Snap(v, pitch float64) float64 {
	if pitch <= 0 {
		return v
	}
	return math.Round(v/pitch) * pitch
}

// SnapPoint snaps both coordinates of p.
func SnapPoint(p Point, pitch float64) Point {
	return Point{X: Snap(p.X, pitch), Y: Snap(p.Y, pitch)}
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Length returns the euclidean distance between a and b.
func Length(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
