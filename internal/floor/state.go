package floor

import (
	"sort"

	"github.com/samber/lo"

	"restaurant-floor-backend/internal/model"
)

// Domain caps enforced by the store.
const (
	MaxLineQuantity = 10
	MaxGuests       = 20
)

// State is an immutable snapshot of everything the store owns. Orders is the
// read-only history of completed orders.
type State struct {
	Tables    []model.Table    `json:"tables"`
	Walls     []model.Wall     `json:"walls"`
	MenuItems []model.MenuItem `json:"menuItems"`
	Orders    []model.Order    `json:"orders"`
}

// Clone returns a deep copy, so callers may hold it without seeing later intents.
func (s State) Clone() State {
	c := State{
		Walls:     cloneSlice(s.Walls),
		MenuItems: cloneSlice(s.MenuItems),
	}
	if s.Tables != nil {
		c.Tables = make([]model.Table, len(s.Tables))
		for i, t := range s.Tables {
			c.Tables[i] = t.Clone()
		}
	}
	if s.Orders != nil {
		c.Orders = make([]model.Order, len(s.Orders))
		for i, o := range s.Orders {
			c.Orders[i] = o.Clone()
		}
	}
	return c
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append([]T(nil), in...)
}

// Table looks up a table by id.
func (s State) Table(id int) (model.Table, bool) {
	return lo.Find(s.Tables, func(t model.Table) bool { return t.ID == id })
}

// Wall looks up a wall by id.
func (s State) Wall(id int) (model.Wall, bool) {
	return lo.Find(s.Walls, func(w model.Wall) bool { return w.ID == id })
}

// MenuItem looks up a menu item by id.
func (s State) MenuItem(id int) (model.MenuItem, bool) {
	return lo.Find(s.MenuItems, func(m model.MenuItem) bool { return m.ID == id })
}

// TablesInZone returns the tables of zone in ascending id order.
func (s State) TablesInZone(zone model.ZoneID) []model.Table {
	tables := lo.Filter(s.Tables, func(t model.Table, _ int) bool { return t.Zone == zone })
	sort.SliceStable(tables, func(i, j int) bool { return tables[i].ID < tables[j].ID })
	return tables
}

// WallsInZone returns the walls of zone in insertion order.
func (s State) WallsInZone(zone model.ZoneID) []model.Wall {
	return lo.Filter(s.Walls, func(w model.Wall, _ int) bool { return w.Zone == zone })
}

// HasWallSegment reports whether a wall with the same zone and endpoints exists,
// ignoring the wall with id skipID.
func (s State) HasWallSegment(w model.Wall, skipID int) bool {
	return lo.ContainsBy(s.Walls, func(existing model.Wall) bool {
		return existing.ID != skipID && existing.SameSegment(w)
	})
}

// nextID implements the id rule shared by every collection: one more than
// the largest id present, or 1 when empty. Freed ids at the top are reused.
func nextID[T any](items []T, id func(T) int) int {
	return lo.Max(lo.Map(items, func(item T, _ int) int { return id(item) })) + 1
}

// NextTableID returns the id AddTable would assign.
func (s State) NextTableID() int {
	return nextID(s.Tables, func(t model.Table) int { return t.ID })
}

// NextWallID returns the id AddWall would assign.
func (s State) NextWallID() int {
	return nextID(s.Walls, func(w model.Wall) int { return w.ID })
}

// NextMenuItemID returns the id AddMenuItem would assign.
func (s State) NextMenuItemID() int {
	return nextID(s.MenuItems, func(m model.MenuItem) int { return m.ID })
}

// NextOrderID considers both the history and every order attached to a table.
func (s State) NextOrderID() int {
	all := cloneSlice(s.Orders)
	for _, t := range s.Tables {
		all = append(all, t.Orders...)
	}
	return nextID(all, func(o model.Order) int { return o.ID })
}

func (s State) tableIndex(id int) int {
	_, idx, ok := lo.FindIndexOf(s.Tables, func(t model.Table) bool { return t.ID == id })
	if !ok {
		return -1
	}
	return idx
}

func (s State) wallIndex(id int) int {
	_, idx, ok := lo.FindIndexOf(s.Walls, func(w model.Wall) bool { return w.ID == id })
	if !ok {
		return -1
	}
	return idx
}

func (s State) menuItemIndex(id int) int {
	_, idx, ok := lo.FindIndexOf(s.MenuItems, func(m model.MenuItem) bool { return m.ID == id })
	if !ok {
		return -1
	}
	return idx
}
