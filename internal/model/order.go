package model

import (
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// OrderItem is one order line. MenuItem is a snapshot taken when the line was
// added, so later menu edits do not change historical totals.
type OrderItem struct {
	MenuItem    MenuItem `json:"menuItem"`
	Quantity    int      `json:"quantity"`
	GuestNumber int      `json:"guestNumber"`
}

// Subtotal returns price x quantity for the line.
func (i OrderItem) Subtotal() int64 {
	return i.MenuItem.Price * int64(i.Quantity)
}

// Order is the set of lines a table accumulates until it is completed.
type Order struct {
	ID          int            `json:"id"`
	TableID     int            `json:"tableId"`
	Items       []OrderItem    `json:"items"`
	TotalAmount int64          `json:"totalAmount"`
	Timestamp   time.Time      `json:"timestamp"`
	IsCompleted bool           `json:"isCompleted"`
	WaiterID    mo.Option[int] `json:"waiterId"`
}

// CalcTotal sums price x quantity over items.
func CalcTotal(items []OrderItem) int64 {
	return lo.SumBy(items, func(i OrderItem) int64 { return i.Subtotal() })
}

// Recalculate refreshes TotalAmount from Items.
func (o *Order) Recalculate() {
	o.TotalAmount = CalcTotal(o.Items)
}

// Clone returns a deep copy of o.
func (o Order) Clone() Order {
	c := o
	if o.Items != nil {
		c.Items = append([]OrderItem(nil), o.Items...)
	}
	return c
}
