package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnap(t *testing.T) {
	testCases := []struct {
		name     string
		v        float64
		pitch    float64
		expected float64
	}{
		{name: "already on grid", v: 40, pitch: 10, expected: 40},
		{name: "rounds down", v: 44, pitch: 10, expected: 40},
		{name: "rounds up", v: 46, pitch: 10, expected: 50},
		{name: "half rounds away from zero", v: 45, pitch: 10, expected: 50},
		{name: "pitch 20", v: 29, pitch: 20, expected: 20},
		{name: "negative", v: -16, pitch: 10, expected: -20},
		{name: "zero pitch disables snapping", v: 13.7, pitch: 0, expected: 13.7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Snap(tc.v, tc.pitch))
		})
	}
}

func TestSnap_Idempotent(t *testing.T) {
	for _, pitch := range []float64{10, 20} {
		for v := -250.0; v <= 750; v += 0.75 {
			once := Snap(v, pitch)
			assert.Equal(t, once, Snap(once, pitch), "snap(snap(%v)) with pitch %v", v, pitch)
		}
	}
}

func TestBounds_Clamp(t *testing.T) {
	b := Bounds{MaxX: 580, MaxY: 520}

	assert.Equal(t, Point{X: 580, Y: 520}, b.Clamp(Point{X: 900, Y: 700}))
	assert.Equal(t, Point{X: 0, Y: 0}, b.Clamp(Point{X: -30, Y: -1}))
	assert.Equal(t, Point{X: 120, Y: 520}, b.Clamp(Point{X: 120, Y: 521}))
	assert.True(t, b.Contains(Point{X: 580, Y: 0}))
	assert.False(t, b.Contains(Point{X: 580.5, Y: 0}))
}

func TestLength(t *testing.T) {
	assert.Equal(t, 20.0, Length(Point{X: 0, Y: 0}, Point{X: 0, Y: 20}))
	assert.Equal(t, 5.0, Length(Point{X: 1, Y: 1}, Point{X: 4, Y: 5}))
	assert.Equal(t, 0.0, Length(Point{X: 10, Y: 10}, Point{X: 10, Y: 10}))
}
