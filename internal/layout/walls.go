package layout

import (
	"restaurant-floor-backend/internal/floor"
	"restaurant-floor-backend/internal/geom"
	"restaurant-floor-backend/internal/model"
)

// WallDraft is a wall being drawn. It is never part of the store until
// CommitWall accepts it.
type WallDraft struct {
	Zone  model.ZoneID
	Start geom.Point
	End   geom.Point
	pitch float64
}

// Move follows the pointer; the end point snaps to the grid.
func (d *WallDraft) Move(p geom.Point) {
	d.End = geom.SnapPoint(p, d.pitch)
}

// Length returns the current segment length.
func (d *WallDraft) Length() float64 {
	return geom.Length(d.Start, d.End)
}

// BeginWall opens a draft at the snapped pointer-down position.
func (e *Editor) BeginWall(zone model.ZoneID, p geom.Point) (*WallDraft, error) {
	if !zone.Valid() {
		return nil, floor.Validation("wall", 0, "unknown zone %q", zone)
	}
	start := geom.SnapPoint(p, e.cfg.GridPitch)
	return &WallDraft{Zone: zone, Start: start, End: start, pitch: e.cfg.GridPitch}, nil
}

// CommitWall finishes a draft on pointer-up. Drafts shorter than one grid
// step are discarded with a validation error; a segment already present in
// the zone is rejected by the store as a conflict.
func (e *Editor) CommitWall(d *WallDraft) (floor.State, error) {
	if d.Length() < e.cfg.GridPitch {
		return floor.State{}, floor.Validation("wall", 0, "wall is %.1fpx long, shorter than the %.0fpx grid step", d.Length(), e.cfg.GridPitch)
	}
	return e.store.Dispatch(floor.AddWall{Wall: model.Wall{
		Start:     d.Start,
		End:       d.End,
		Thickness: model.DefaultWallThickness,
		Zone:      d.Zone,
	}})
}

// DrawWall replays a whole pointer trace: the first point is pointer-down,
// the rest are moves, and the last one is where the pointer was released.
func (e *Editor) DrawWall(zone model.ZoneID, trace []geom.Point) (floor.State, error) {
	if len(trace) == 0 {
		return floor.State{}, floor.Validation("wall", 0, "empty pointer trace")
	}
	d, err := e.BeginWall(zone, trace[0])
	if err != nil {
		return floor.State{}, err
	}
	for _, p := range trace[1:] {
		d.Move(p)
	}
	return e.CommitWall(d)
}

// DeleteWall removes a wall. Nothing depends on walls, so no checks apply.
func (e *Editor) DeleteWall(wallID int) (floor.State, error) {
	return e.store.Dispatch(floor.DeleteWall{WallID: wallID})
}
