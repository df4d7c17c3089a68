package floor

import (
	"github.com/samber/lo"

	"restaurant-floor-backend/internal/model"
)

// checkState verifies that a snapshot coming from outside the reducer holds
// the invariants every intent preserves, filling in the defaults a stored
// table may omit. s is modified in place.
func checkState(s *State) error {
	if id, dup := firstDuplicate(s.Tables, func(t model.Table) int { return t.ID }); dup {
		return conflict("table", id, "id is used by more than one table")
	}
	if id, dup := firstDuplicate(s.Walls, func(w model.Wall) int { return w.ID }); dup {
		return conflict("wall", id, "id is used by more than one wall")
	}
	if id, dup := firstDuplicate(s.MenuItems, func(m model.MenuItem) int { return m.ID }); dup {
		return conflict("menu item", id, "id is used by more than one menu item")
	}

	for i := range s.Tables {
		t := &s.Tables[i]
		switch {
		case !t.Zone.Valid():
			return invalid("table", t.ID, "unknown zone %q", t.Zone)
		case !t.Status.Valid():
			return invalid("table", t.ID, "unknown status %q", t.Status)
		case t.Size != "" && !t.Size.Valid():
			return invalid("table", t.ID, "unknown size %q", t.Size)
		case t.Guests < 0 || t.Guests > MaxGuests:
			return invalid("table", t.ID, "guest count %d outside [0, %d]", t.Guests, MaxGuests)
		}
		if t.Size == "" {
			t.Size = model.DefaultTableSize
		}
		if t.Orders == nil {
			t.Orders = []model.Order{}
		}
		if open := lo.CountBy(t.Orders, func(o model.Order) bool { return !o.IsCompleted }); open > 1 {
			return invalidState("table", t.ID, "table has %d open orders", open)
		}
	}

	for i, w := range s.Walls {
		if !w.Zone.Valid() {
			return invalid("wall", w.ID, "unknown zone %q", w.Zone)
		}
		if lo.ContainsBy(s.Walls[:i], w.SameSegment) {
			return conflict("wall", w.ID, "a wall from %v to %v already exists in zone %s", w.Start, w.End, w.Zone)
		}
	}
	return nil
}

func firstDuplicate[T any](items []T, id func(T) int) (int, bool) {
	seen := make(map[int]struct{}, len(items))
	for _, item := range items {
		k := id(item)
		if _, ok := seen[k]; ok {
			return k, true
		}
		seen[k] = struct{}{}
	}
	return 0, false
}
