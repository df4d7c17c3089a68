// Package session sequences the waiter's order-taking flow in front of the
// floor store: guest count, guest, category, items, summary, commit. The cart
// lives here until commit, so an abandoned session writes no order lines.
package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/samber/mo"

	"restaurant-floor-backend/internal/floor"
	"restaurant-floor-backend/internal/model"
)

// Step is a position in the flow.
type Step string

const (
	StepGuestCount     Step = "guest-count"
	StepGuestSelection Step = "guest-selection"
	StepCategory       Step = "category"
	StepItems          Step = "items"
	StepSummary        Step = "summary"
	StepCommitted      Step = "committed"
)

// Dispatcher is the part of floor.Store a session needs.
type Dispatcher interface {
	Dispatch(in floor.Intent) (floor.State, error)
	Snapshot() floor.State
}

// Line is one cart entry, keyed by guest and menu item.
type Line struct {
	Guest    int            `json:"guest"`
	Item     model.MenuItem `json:"item"`
	Quantity int            `json:"quantity"`
}

// View is a read-only copy of a session for rendering.
type View struct {
	ID       string         `json:"id"`
	TableID  int            `json:"tableId"`
	WaiterID mo.Option[int] `json:"waiterId"`
	Step     Step           `json:"step"`
	TopUp    bool           `json:"topUp"`
	Guests   int            `json:"guests"`
	Guest    int            `json:"guest"`
	Category string         `json:"category"`
	Lines    []Line         `json:"lines"`
	Total    int64          `json:"total"`
}

// Session is one pass through the flow for one table. Methods are safe for
// concurrent use.
type Session struct {
	mu       sync.Mutex
	store    Dispatcher
	id       string
	tableID  int
	waiterID mo.Option[int]
	step     Step
	topUp    bool
	guests   int
	guest    int
	category string
	lines    []Line
}

// New starts a session for tableID. A table that is occupied and already has
// an open order is topped up: guest count is skipped and commit leaves the
// order open.
func New(store Dispatcher, tableID int, waiterID mo.Option[int]) (*Session, error) {
	t, ok := store.Snapshot().Table(tableID)
	if !ok {
		return nil, floor.NotFound("table", tableID)
	}
	s := &Session{
		store:    store,
		id:       uuid.NewString(),
		tableID:  tableID,
		waiterID: waiterID,
		step:     StepGuestCount,
	}
	if _, _, open := t.OpenOrder(); open && t.Status == model.StatusOccupied && t.Guests > 0 {
		s.topUp = true
		s.guests = t.Guests
		s.step = StepGuestSelection
	}
	return s, nil
}

// ID returns the session's unique id.
func (s *Session) ID() string {
	return s.id
}

// View returns a copy of the session state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		ID:       s.id,
		TableID:  s.tableID,
		WaiterID: s.waiterID,
		Step:     s.step,
		TopUp:    s.topUp,
		Guests:   s.guests,
		Guest:    s.guest,
		Category: s.category,
		Lines:    append([]Line{}, s.lines...),
		Total:    s.total(),
	}
}

func (s *Session) expect(step Step) error {
	if s.step != step {
		return floor.InvalidState("session", s.tableID, "expected step %s, session is at %s", step, s.step)
	}
	return nil
}

// ConfirmGuests seats n guests and occupies the table.
func (s *Session) ConfirmGuests(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.expect(StepGuestCount); err != nil {
		return err
	}
	if n < 1 || n > floor.MaxGuests {
		return floor.Validation("session", s.tableID, "guest count %d outside [1, %d]", n, floor.MaxGuests)
	}
	_, err := s.store.Dispatch(floor.SetTableStatus{
		TableID:  s.tableID,
		Status:   model.StatusOccupied,
		Guests:   mo.Some(n),
		WaiterID: s.waiterID,
	})
	if err != nil {
		return err
	}
	s.guests = n
	// Lines for guests that no longer exist are dropped.
	s.lines = lo.Filter(s.lines, func(l Line, _ int) bool { return l.Guest <= n })
	s.step = StepGuestSelection
	return nil
}

// SelectGuest makes guest k (1-based) the one items are added for.
func (s *Session) SelectGuest(k int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.expect(StepGuestSelection); err != nil {
		return err
	}
	if k < 1 || k > s.guests {
		return floor.Validation("session", s.tableID, "guest %d outside [1, %d]", k, s.guests)
	}
	s.guest = k
	s.step = StepCategory
	return nil
}

// SelectCategory opens one of the fixed menu categories.
func (s *Session) SelectCategory(c string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.expect(StepCategory); err != nil {
		return err
	}
	if !model.ValidCategory(c) {
		return floor.Validation("session", s.tableID, "unknown category %q", c)
	}
	s.category = c
	s.step = StepItems
	return nil
}

// AddItem puts one more of menuItemID on the active guest's cart line. Only
// items of the selected category can be picked.
func (s *Session) AddItem(menuItemID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.expect(StepItems); err != nil {
		return err
	}
	item, ok := s.store.Snapshot().MenuItem(menuItemID)
	if !ok {
		return floor.NotFound("menu item", menuItemID)
	}
	if item.Category != s.category {
		return floor.Validation("session", s.tableID, "%s is not in category %s", item.Name, s.category)
	}
	_, idx, found := lo.FindIndexOf(s.lines, func(l Line) bool {
		return l.Guest == s.guest && l.Item.ID == menuItemID
	})
	if !found {
		s.lines = append(s.lines, Line{Guest: s.guest, Item: item, Quantity: 1})
		return nil
	}
	if s.lines[idx].Quantity >= floor.MaxLineQuantity {
		return floor.Validation("session", s.tableID, "guest %d already has %d of %s", s.guest, floor.MaxLineQuantity, item.Name)
	}
	s.lines[idx].Quantity++
	return nil
}

// RemoveItem deletes guest's line for menuItemID.
func (s *Session) RemoveItem(guest, menuItemID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step == StepGuestCount || s.step == StepCommitted {
		return floor.InvalidState("session", s.tableID, "no cart at step %s", s.step)
	}
	_, idx, found := lo.FindIndexOf(s.lines, func(l Line) bool {
		return l.Guest == guest && l.Item.ID == menuItemID
	})
	if !found {
		return floor.NotFound("menu item", menuItemID)
	}
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	if len(s.lines) == 0 && s.step == StepSummary {
		s.step = StepItems
	}
	return nil
}

// ShowSummary jumps to the summary from any step once the cart has a line.
func (s *Session) ShowSummary() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step == StepCommitted {
		return floor.InvalidState("session", s.tableID, "session is already committed")
	}
	if len(s.lines) == 0 {
		return floor.InvalidState("session", s.tableID, "cart is empty")
	}
	s.step = StepSummary
	return nil
}

// Back returns to the previous step. The cart is kept.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.step {
	case StepSummary:
		s.step = StepItems
		if s.guest == 0 {
			s.step = StepGuestSelection
		} else if s.category == "" {
			s.step = StepCategory
		}
	case StepItems:
		s.step = StepCategory
	case StepCategory:
		s.step = StepGuestSelection
	case StepGuestSelection:
		if s.topUp {
			return floor.InvalidState("session", s.tableID, "guest count is fixed while topping up")
		}
		s.step = StepGuestCount
	default:
		return floor.InvalidState("session", s.tableID, "cannot go back from %s", s.step)
	}
	return nil
}

// Commit writes the cart to the store as one atomic batch: one AddOrderItem
// per line in insertion order, then CompleteOrder unless topping up.
func (s *Session) Commit() (floor.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.expect(StepSummary); err != nil {
		return floor.State{}, err
	}
	intents := lo.Map(s.lines, func(l Line, _ int) floor.Intent {
		return floor.AddOrderItem{
			TableID:  s.tableID,
			Item:     model.OrderItem{MenuItem: l.Item, Quantity: l.Quantity, GuestNumber: l.Guest},
			WaiterID: s.waiterID,
		}
	})
	if !s.topUp {
		intents = append(intents, floor.CompleteOrder{TableID: s.tableID, WaiterID: s.waiterID})
	}
	state, err := s.store.Dispatch(floor.Batch{Intents: intents})
	if err != nil {
		return floor.State{}, err
	}
	s.step = StepCommitted
	return state, nil
}

func (s *Session) total() int64 {
	return lo.SumBy(s.lines, func(l Line) int64 { return l.Item.Price * int64(l.Quantity) })
}
