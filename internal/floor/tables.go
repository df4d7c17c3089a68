package floor

import (
	"time"

	"github.com/samber/mo"

	"restaurant-floor-backend/internal/model"
)

func (in SetTableStatus) apply(s *State, now time.Time) error {
	idx := s.tableIndex(in.TableID)
	if idx < 0 {
		return notFound("table", in.TableID)
	}
	if !in.Status.Valid() {
		return invalid("table", in.TableID, "unknown status %q", in.Status)
	}
	if g, ok := in.Guests.Get(); ok && (g < 0 || g > MaxGuests) {
		return invalid("table", in.TableID, "guest count %d outside [0, %d]", g, MaxGuests)
	}

	t := &s.Tables[idx]
	if in.Status == model.StatusOccupied {
		// Re-occupying keeps the original start time and the open order.
		if t.Status != model.StatusOccupied || t.StartTime.IsAbsent() {
			t.StartTime = mo.Some(now)
		}
		t.Guests = in.Guests.OrElse(t.Guests)
		if w, ok := in.WaiterID.Get(); ok {
			t.WaiterID = mo.Some(w)
		}
	} else {
		t.Guests = in.Guests.OrElse(0)
		t.StartTime = mo.None[time.Time]()
		t.WaiterID = mo.None[int]()
		t.Orders = []model.Order{}
	}
	t.Status = in.Status
	return nil
}

func (in AddOrderItem) apply(s *State, now time.Time) error {
	idx := s.tableIndex(in.TableID)
	if idx < 0 {
		return notFound("table", in.TableID)
	}
	item := in.Item
	switch {
	case item.Quantity < 1:
		return invalid("table", in.TableID, "quantity must be positive, got %d", item.Quantity)
	case item.Quantity > MaxLineQuantity:
		return invalid("table", in.TableID, "quantity %d exceeds the cap of %d", item.Quantity, MaxLineQuantity)
	case item.GuestNumber < 1:
		return invalid("table", in.TableID, "guest number must be positive, got %d", item.GuestNumber)
	}

	t := &s.Tables[idx]
	if t.Guests > 0 && item.GuestNumber > t.Guests {
		return invalid("table", in.TableID, "guest %d is not seated (guests: %d)", item.GuestNumber, t.Guests)
	}

	order, orderIdx, ok := t.OpenOrder()
	if !ok {
		order = model.Order{
			ID:        s.NextOrderID(),
			TableID:   t.ID,
			Items:     []model.OrderItem{},
			Timestamp: now,
			WaiterID:  in.WaiterID,
		}
	} else if order.WaiterID.IsAbsent() {
		order.WaiterID = in.WaiterID
	}

	merged := false
	for i := range order.Items {
		line := &order.Items[i]
		if line.MenuItem.ID != item.MenuItem.ID || line.GuestNumber != item.GuestNumber {
			continue
		}
		if line.Quantity+item.Quantity > MaxLineQuantity {
			return invalid("table", in.TableID, "menu item %d for guest %d would reach %d, cap is %d",
				item.MenuItem.ID, item.GuestNumber, line.Quantity+item.Quantity, MaxLineQuantity)
		}
		line.Quantity += item.Quantity
		merged = true
		break
	}
	if !merged {
		order.Items = append(order.Items, item)
	}
	order.Recalculate()

	if orderIdx < 0 {
		t.Orders = append(t.Orders, order)
	} else {
		t.Orders[orderIdx] = order
	}
	if t.Status != model.StatusOccupied {
		t.Status = model.StatusOccupied
		t.StartTime = mo.Some(now)
	}
	if t.WaiterID.IsAbsent() {
		t.WaiterID = in.WaiterID
	}
	return nil
}

func (in RemoveOrderItem) apply(s *State, _ time.Time) error {
	idx := s.tableIndex(in.TableID)
	if idx < 0 {
		return notFound("table", in.TableID)
	}
	t := &s.Tables[idx]
	orderIdx := -1
	for i, o := range t.Orders {
		if o.ID == in.OrderID {
			orderIdx = i
			break
		}
	}
	if orderIdx < 0 {
		return notFound("order", in.OrderID)
	}
	order := &t.Orders[orderIdx]
	if order.IsCompleted {
		return invalidState("order", in.OrderID, "order is already completed")
	}
	if in.ItemIndex < 0 || in.ItemIndex >= len(order.Items) {
		return &Error{Kind: KindNotFound, Entity: "order", ID: in.OrderID, Msg: "no line at the given index"}
	}
	order.Items = append(order.Items[:in.ItemIndex], order.Items[in.ItemIndex+1:]...)
	order.Recalculate()
	return nil
}

func (in CompleteOrder) apply(s *State, _ time.Time) error {
	idx := s.tableIndex(in.TableID)
	if idx < 0 {
		return notFound("table", in.TableID)
	}
	t := &s.Tables[idx]

	var (
		order    model.Order
		orderIdx = -1
	)
	if in.OrderID == 0 {
		order, orderIdx, _ = t.OpenOrder()
	} else {
		for i, o := range t.Orders {
			if o.ID == in.OrderID {
				order, orderIdx = o, i
				break
			}
		}
	}
	if orderIdx < 0 {
		if in.OrderID == 0 {
			return invalidState("table", in.TableID, "table has no open order")
		}
		return notFound("order", in.OrderID)
	}
	if order.IsCompleted {
		return invalidState("order", order.ID, "order is already completed")
	}
	if len(order.Items) == 0 {
		return invalid("order", order.ID, "cannot complete an order without items")
	}

	order.IsCompleted = true
	order.Recalculate()
	if w, ok := in.WaiterID.Get(); ok {
		order.WaiterID = mo.Some(w)
	}
	s.Orders = append(s.Orders, order.Clone())

	t.Status = model.StatusClosed
	t.Guests = 0
	t.Orders = []model.Order{}
	t.StartTime = mo.None[time.Time]()
	t.WaiterID = mo.None[int]()
	return nil
}

func (in AddTable) apply(s *State, _ time.Time) error {
	t := in.Table.Clone()
	t.ID = s.NextTableID()
	if !t.Zone.Valid() {
		t.Zone = model.ZoneFree
	}
	if !t.Status.Valid() {
		t.Status = model.StatusFree
	}
	if !t.Size.Valid() {
		t.Size = model.DefaultTableSize
	}
	if t.Guests < 0 {
		t.Guests = 0
	}
	if t.Orders == nil {
		t.Orders = []model.Order{}
	}
	s.Tables = append(s.Tables, t)
	return nil
}

func (in UpdateTable) apply(s *State, _ time.Time) error {
	idx := s.tableIndex(in.TableID)
	if idx < 0 {
		return notFound("table", in.TableID)
	}
	t := &s.Tables[idx]
	p := in.Patch

	if newID, ok := p.ID.Get(); ok && newID != t.ID {
		if newID <= 0 {
			return invalid("table", in.TableID, "table number must be positive, got %d", newID)
		}
		if s.tableIndex(newID) >= 0 {
			return conflict("table", in.TableID, "number %d is already used by another table", newID)
		}
		t.ID = newID
		for i := range t.Orders {
			t.Orders[i].TableID = newID
		}
	}
	if z, ok := p.Zone.Get(); ok {
		if !z.Valid() {
			return invalid("table", in.TableID, "unknown zone %q", z)
		}
		t.Zone = z
	}
	if size, ok := p.Size.Get(); ok {
		if !size.Valid() {
			return invalid("table", in.TableID, "unknown size %q", size)
		}
		t.Size = size
	}
	if pos, ok := p.Position.Get(); ok {
		t.Position = mo.Some(pos)
	}
	return nil
}

func (in DeleteTable) apply(s *State, _ time.Time) error {
	idx := s.tableIndex(in.TableID)
	if idx < 0 {
		return notFound("table", in.TableID)
	}
	if s.Tables[idx].Status == model.StatusOccupied {
		return invalidState("table", in.TableID, "cannot delete an occupied table")
	}
	s.Tables = append(s.Tables[:idx], s.Tables[idx+1:]...)
	return nil
}
