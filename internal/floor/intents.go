package floor

import (
	"time"

	"github.com/samber/mo"

	"restaurant-floor-backend/internal/geom"
	"restaurant-floor-backend/internal/model"
)

// Intent is one requested mutation. The set of intents is closed: each type
// below implements apply, which mutates a private copy of the state.
type Intent interface {
	apply(s *State, now time.Time) error
}

// SetTableStatus moves a table through free / occupied / closed.
type SetTableStatus struct {
	TableID  int
	Status   model.TableStatus
	Guests   mo.Option[int]
	WaiterID mo.Option[int]
}

// AddOrderItem folds Item into the table's open order, creating it if needed.
type AddOrderItem struct {
	TableID  int
	Item     model.OrderItem
	WaiterID mo.Option[int]
}

// RemoveOrderItem deletes the line at ItemIndex from an open order.
type RemoveOrderItem struct {
	TableID   int
	OrderID   int
	ItemIndex int
}

// CompleteOrder finalizes an order and releases the table. An OrderID of 0
// selects the table's open order.
type CompleteOrder struct {
	TableID  int
	OrderID  int
	WaiterID mo.Option[int]
}

// AddTable inserts Table under a freshly assigned id; Table.ID is ignored.
type AddTable struct {
	Table model.Table
}

// TablePatch lists the table fields UpdateTable may change.
type TablePatch struct {
	ID       mo.Option[int]
	Zone     mo.Option[model.ZoneID]
	Position mo.Option[geom.Point]
	Size     mo.Option[model.TableSize]
}

// UpdateTable merges Patch into an existing table.
type UpdateTable struct {
	TableID int
	Patch   TablePatch
}

// DeleteTable removes a table that is not occupied.
type DeleteTable struct {
	TableID int
}

// AddWall inserts Wall under a freshly assigned id.
type AddWall struct {
	Wall model.Wall
}

// WallPatch lists the wall fields UpdateWall may change.
type WallPatch struct {
	Start     mo.Option[geom.Point]
	End       mo.Option[geom.Point]
	Thickness mo.Option[float64]
	Zone      mo.Option[model.ZoneID]
}

// UpdateWall merges Patch into an existing wall.
type UpdateWall struct {
	WallID int
	Patch  WallPatch
}

// DeleteWall removes a wall unconditionally.
type DeleteWall struct {
	WallID int
}

// AddMenuItem inserts Item under a freshly assigned id.
type AddMenuItem struct {
	Item model.MenuItem
}

// MenuItemPatch lists the menu item fields UpdateMenuItem may change.
type MenuItemPatch struct {
	Name     mo.Option[string]
	Category mo.Option[string]
	Price    mo.Option[int64]
}

// UpdateMenuItem merges Patch into an existing menu item. Orders keep the
// snapshot they were taken with.
type UpdateMenuItem struct {
	ItemID int
	Patch  MenuItemPatch
}

// DeleteMenuItem removes a menu item.
type DeleteMenuItem struct {
	ItemID int
}

// LoadState replaces the whole snapshot, e.g. after reading it back from disk.
// It fails if the new snapshot breaks a store invariant.
type LoadState struct {
	State State
}

// Batch applies Intents in order as one all-or-nothing step.
type Batch struct {
	Intents []Intent
}

// Reduce applies in to s and returns the resulting snapshot. s itself is never
// modified; on error the caller keeps s unchanged.
func Reduce(s State, in Intent, now time.Time) (State, error) {
	next := s.Clone()
	if err := in.apply(&next, now); err != nil {
		return s, err
	}
	return next, nil
}

func (in Batch) apply(s *State, now time.Time) error {
	for _, step := range in.Intents {
		if err := step.apply(s, now); err != nil {
			return err
		}
	}
	return nil
}

func (in LoadState) apply(s *State, _ time.Time) error {
	next := in.State.Clone()
	if err := checkState(&next); err != nil {
		return err
	}
	*s = next
	return nil
}
