package layout

import (
	"github.com/samber/lo"
	"github.com/samber/mo"

	"restaurant-floor-backend/internal/floor"
	"restaurant-floor-backend/internal/geom"
	"restaurant-floor-backend/internal/model"
	"restaurant-floor-backend/internal/parse"
)

// Defaults for the hall editor. The canvas bounds keep a 52px table fully
// inside a 600x600 hall.
const (
	DefaultGridPitch = 10
	DefaultMaxX      = 580
	DefaultMaxY      = 520
	DefaultMaxTables = 50
)

// Reset grid: row-major, ResetColumns per row, ResetPitch apart, starting at
// (ResetOrigin, ResetOrigin).
const (
	ResetColumns = 6
	ResetPitch   = 120
	ResetOrigin  = 100
)

// Config holds the editor tunables.
type Config struct {
	GridPitch float64
	Bounds    geom.Bounds
	MaxTables int
}

// DefaultConfig returns the stock editor settings.
func DefaultConfig() Config {
	return Config{
		GridPitch: DefaultGridPitch,
		Bounds:    geom.Bounds{MaxX: DefaultMaxX, MaxY: DefaultMaxY},
		MaxTables: DefaultMaxTables,
	}
}

// Dispatcher is the part of floor.Store the editor needs.
type Dispatcher interface {
	Dispatch(in floor.Intent) (floor.State, error)
	Snapshot() floor.State
}

// Editor turns pointer gestures and form edits into store intents. It keeps
// no state of its own; in-progress walls live in WallDraft values owned by
// the caller.
type Editor struct {
	cfg   Config
	store Dispatcher
}

// NewEditor returns an editor over store. Zero-valued fields of cfg fall back
// to DefaultConfig.
func NewEditor(store Dispatcher, cfg Config) *Editor {
	def := DefaultConfig()
	if cfg.GridPitch <= 0 {
		cfg.GridPitch = def.GridPitch
	}
	if cfg.Bounds.MaxX <= 0 || cfg.Bounds.MaxY <= 0 {
		cfg.Bounds = def.Bounds
	}
	if cfg.MaxTables <= 0 {
		cfg.MaxTables = def.MaxTables
	}
	return &Editor{cfg: cfg, store: store}
}

// Config returns the effective settings.
func (e *Editor) Config() Config {
	return e.cfg
}

// DragPosition computes where a table at from ends up after a pointer delta.
// The sum is snapped first and then clamped, so a clamped axis lands exactly
// on the canvas edge.
func (e *Editor) DragPosition(from, delta geom.Point, snap bool) geom.Point {
	p := from.Add(delta)
	if snap {
		p = geom.SnapPoint(p, e.cfg.GridPitch)
	}
	return e.cfg.Bounds.Clamp(p)
}

// MoveTable applies a drag delta to a table. Tables that were never placed
// start from the canvas origin.
func (e *Editor) MoveTable(tableID int, delta geom.Point, snap bool) (floor.State, error) {
	t, ok := e.store.Snapshot().Table(tableID)
	if !ok {
		return floor.State{}, floor.NotFound("table", tableID)
	}
	to := e.DragPosition(t.Position.OrElse(geom.Point{}), delta, snap)
	return e.store.Dispatch(floor.UpdateTable{
		TableID: tableID,
		Patch:   floor.TablePatch{Position: mo.Some(to)},
	})
}

// AddTable creates a table, refusing once the hall holds MaxTables. A given
// position is snapped and clamped like a drag.
func (e *Editor) AddTable(t model.Table) (floor.State, error) {
	if n := len(e.store.Snapshot().Tables); n >= e.cfg.MaxTables {
		return floor.State{}, floor.Validation("table", 0, "the hall already holds the maximum of %d tables", e.cfg.MaxTables)
	}
	if p, ok := t.Position.Get(); ok {
		t.Position = mo.Some(e.cfg.Bounds.Clamp(geom.SnapPoint(p, e.cfg.GridPitch)))
	}
	return e.store.Dispatch(floor.AddTable{Table: t})
}

// TableEdit is what the table form can change. Number is the raw text typed
// into the number field.
type TableEdit struct {
	Number mo.Option[string]
	Zone   mo.Option[model.ZoneID]
	Size   mo.Option[model.TableSize]
}

// EditTable applies a form edit as one update. On any error the table keeps
// its current values.
func (e *Editor) EditTable(tableID int, edit TableEdit) (floor.State, error) {
	patch := floor.TablePatch{Zone: edit.Zone, Size: edit.Size}
	if raw, ok := edit.Number.Get(); ok {
		n, err := parse.ParseTableNumber(raw)
		if err != nil {
			return floor.State{}, floor.Validation("table", tableID, "%v", err)
		}
		patch.ID = mo.Some(n)
	}
	return e.store.Dispatch(floor.UpdateTable{TableID: tableID, Patch: patch})
}

// RenumberTable parses the text typed into the number field and gives the
// table that id.
func (e *Editor) RenumberTable(tableID int, raw string) (floor.State, error) {
	return e.EditTable(tableID, TableEdit{Number: mo.Some(raw)})
}

// ResetPosition returns the i-th slot of the reset grid.
func ResetPosition(i int) geom.Point {
	return geom.Point{
		X: float64(ResetOrigin + (i%ResetColumns)*ResetPitch),
		Y: float64(ResetOrigin + (i/ResetColumns)*ResetPitch),
	}
}

// ResetLayout lays the zone's tables out on the reset grid in ascending id
// order, as one atomic step.
func (e *Editor) ResetLayout(zone model.ZoneID) (floor.State, error) {
	if !zone.Valid() {
		return floor.State{}, floor.Validation("zone", 0, "unknown zone %q", zone)
	}
	tables := e.store.Snapshot().TablesInZone(zone)
	intents := lo.Map(tables, func(t model.Table, i int) floor.Intent {
		return floor.UpdateTable{
			TableID: t.ID,
			Patch:   floor.TablePatch{Position: mo.Some(ResetPosition(i))},
		}
	})
	return e.store.Dispatch(floor.Batch{Intents: intents})
}
