package floor

import (
	"time"

	"restaurant-floor-backend/internal/model"
)

func (in AddWall) apply(s *State, _ time.Time) error {
	w := in.Wall
	w.ID = s.NextWallID()
	if !w.Zone.Valid() {
		return invalid("wall", 0, "unknown zone %q", w.Zone)
	}
	if w.Thickness <= 0 {
		w.Thickness = model.DefaultWallThickness
	}
	if s.HasWallSegment(w, 0) {
		return conflict("wall", 0, "a wall from %v to %v already exists in zone %s", w.Start, w.End, w.Zone)
	}
	s.Walls = append(s.Walls, w)
	return nil
}

func (in UpdateWall) apply(s *State, _ time.Time) error {
	idx := s.wallIndex(in.WallID)
	if idx < 0 {
		return notFound("wall", in.WallID)
	}
	w := s.Walls[idx]
	p := in.Patch
	w.Start = p.Start.OrElse(w.Start)
	w.End = p.End.OrElse(w.End)
	w.Zone = p.Zone.OrElse(w.Zone)
	if th, ok := p.Thickness.Get(); ok && th > 0 {
		w.Thickness = th
	}
	if !w.Zone.Valid() {
		return invalid("wall", in.WallID, "unknown zone %q", w.Zone)
	}
	if s.HasWallSegment(w, w.ID) {
		return conflict("wall", in.WallID, "a wall from %v to %v already exists in zone %s", w.Start, w.End, w.Zone)
	}
	s.Walls[idx] = w
	return nil
}

func (in DeleteWall) apply(s *State, _ time.Time) error {
	idx := s.wallIndex(in.WallID)
	if idx < 0 {
		return notFound("wall", in.WallID)
	}
	s.Walls = append(s.Walls[:idx], s.Walls[idx+1:]...)
	return nil
}
