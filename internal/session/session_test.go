package session

import (
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-floor-backend/internal/floor"
	"restaurant-floor-backend/internal/model"
)

var (
	beer  = model.MenuItem{ID: 1, Name: "Beer", Category: "Bar", Price: 350}
	fries = model.MenuItem{ID: 2, Name: "Fries", Category: "Starters", Price: 250}
)

func newFloor(t *testing.T, status model.TableStatus) *floor.Store {
	t.Helper()
	return floor.NewStore(floor.State{
		Tables: []model.Table{{
			ID: 5, Zone: model.ZoneBowling, Status: status,
			Orders: []model.Order{}, Size: model.SizeMedium,
		}},
		MenuItems: []model.MenuItem{beer, fries},
	})
}

// walk drives a fresh session to the item step for guest.
func walk(t *testing.T, s *Session, guests, guest int, category string) {
	t.Helper()
	if s.View().Step == StepGuestCount {
		require.NoError(t, s.ConfirmGuests(guests))
	}
	require.NoError(t, s.SelectGuest(guest))
	require.NoError(t, s.SelectCategory(category))
}

func TestSession_NewOrderCommit(t *testing.T) {
	store := newFloor(t, model.StatusFree)
	s, err := New(store, 5, mo.Some(11))
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, StepGuestCount, s.View().Step)

	walk(t, s, 2, 1, "Bar")
	table, _ := store.Snapshot().Table(5)
	assert.Equal(t, model.StatusOccupied, table.Status, "confirming guests occupies the table")
	assert.Equal(t, 2, table.Guests)
	assert.Empty(t, table.Orders, "the cart is not written before commit")

	require.NoError(t, s.AddItem(beer.ID))
	require.NoError(t, s.AddItem(beer.ID))
	require.NoError(t, s.Back())
	require.NoError(t, s.Back())
	require.NoError(t, s.SelectGuest(2))
	require.NoError(t, s.SelectCategory("Starters"))
	require.NoError(t, s.AddItem(fries.ID))
	require.NoError(t, s.ShowSummary())

	view := s.View()
	assert.Equal(t, StepSummary, view.Step)
	assert.Equal(t, []Line{
		{Guest: 1, Item: beer, Quantity: 2},
		{Guest: 2, Item: fries, Quantity: 1},
	}, view.Lines)
	assert.Equal(t, int64(950), view.Total)

	state, err := s.Commit()
	require.NoError(t, err)
	assert.Equal(t, StepCommitted, s.View().Step)

	table, _ = state.Table(5)
	assert.Equal(t, model.StatusClosed, table.Status)
	require.Len(t, state.Orders, 1)
	order := state.Orders[0]
	assert.Equal(t, int64(950), order.TotalAmount)
	assert.Equal(t, mo.Some(11), order.WaiterID)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 1, order.Items[0].GuestNumber)
	assert.Equal(t, 2, order.Items[1].GuestNumber)

	_, err = s.Commit()
	assert.ErrorIs(t, err, floor.ErrInvalidState)
}

func TestSession_TopUpLeavesOrderOpen(t *testing.T) {
	store := newFloor(t, model.StatusFree)
	_, err := store.Dispatch(floor.SetTableStatus{TableID: 5, Status: model.StatusOccupied, Guests: mo.Some(3)})
	require.NoError(t, err)
	_, err = store.Dispatch(floor.AddOrderItem{TableID: 5, Item: model.OrderItem{MenuItem: fries, Quantity: 1, GuestNumber: 3}})
	require.NoError(t, err)

	s, err := New(store, 5, mo.None[int]())
	require.NoError(t, err)
	view := s.View()
	assert.True(t, view.TopUp)
	assert.Equal(t, StepGuestSelection, view.Step)
	assert.Equal(t, 3, view.Guests)
	assert.ErrorIs(t, s.Back(), floor.ErrInvalidState)

	walk(t, s, 0, 3, "Starters")
	require.NoError(t, s.AddItem(fries.ID))
	require.NoError(t, s.ShowSummary())
	state, err := s.Commit()
	require.NoError(t, err)

	table, _ := state.Table(5)
	assert.Equal(t, model.StatusOccupied, table.Status)
	require.Len(t, table.Orders, 1)
	assert.False(t, table.Orders[0].IsCompleted)
	assert.Equal(t, 2, table.Orders[0].Items[0].Quantity)
	assert.Empty(t, state.Orders)
}

func TestSession_GuestCountBounds(t *testing.T) {
	testCases := []struct {
		name    string
		guests  int
		wantErr bool
	}{
		{name: "Zero", guests: 0, wantErr: true},
		{name: "One", guests: 1},
		{name: "Twenty", guests: 20},
		{name: "Twenty-one", guests: 21, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFloor(t, model.StatusFree)
			s, err := New(store, 5, mo.None[int]())
			require.NoError(t, err)

			err = s.ConfirmGuests(tc.guests)
			if tc.wantErr {
				assert.ErrorIs(t, err, floor.ErrValidation)
				assert.Equal(t, StepGuestCount, s.View().Step)
				table, _ := store.Snapshot().Table(5)
				assert.Equal(t, model.StatusFree, table.Status)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, StepGuestSelection, s.View().Step)
			}
		})
	}
}

func TestSession_RejectsOutOfOrderSteps(t *testing.T) {
	s, err := New(newFloor(t, model.StatusFree), 5, mo.None[int]())
	require.NoError(t, err)

	assert.ErrorIs(t, s.SelectGuest(1), floor.ErrInvalidState)
	assert.ErrorIs(t, s.SelectCategory("Bar"), floor.ErrInvalidState)
	assert.ErrorIs(t, s.AddItem(beer.ID), floor.ErrInvalidState)
	assert.ErrorIs(t, s.ShowSummary(), floor.ErrInvalidState)
	_, err = s.Commit()
	assert.ErrorIs(t, err, floor.ErrInvalidState)

	require.NoError(t, s.ConfirmGuests(2))
	assert.ErrorIs(t, s.SelectGuest(3), floor.ErrValidation)
	require.NoError(t, s.SelectGuest(2))
	assert.ErrorIs(t, s.SelectCategory("Soups"), floor.ErrValidation)
	assert.Equal(t, StepCategory, s.View().Step)
	require.NoError(t, s.SelectCategory("Bar"))
	assert.ErrorIs(t, s.AddItem(99), floor.ErrNotFound)
}

func TestSession_QuantityCap(t *testing.T) {
	s, err := New(newFloor(t, model.StatusFree), 5, mo.None[int]())
	require.NoError(t, err)
	walk(t, s, 1, 1, "Bar")

	for i := 0; i < floor.MaxLineQuantity; i++ {
		require.NoError(t, s.AddItem(beer.ID))
	}
	assert.ErrorIs(t, s.AddItem(beer.ID), floor.ErrValidation)
	assert.Equal(t, floor.MaxLineQuantity, s.View().Lines[0].Quantity)
}

func TestSession_ItemOutsideCategory(t *testing.T) {
	s, err := New(newFloor(t, model.StatusFree), 5, mo.None[int]())
	require.NoError(t, err)
	walk(t, s, 1, 1, "Bar")

	assert.ErrorIs(t, s.AddItem(fries.ID), floor.ErrValidation)
	assert.Empty(t, s.View().Lines)
	require.NoError(t, s.AddItem(beer.ID))
}

func TestSession_RemoveItem(t *testing.T) {
	s, err := New(newFloor(t, model.StatusFree), 5, mo.None[int]())
	require.NoError(t, err)
	walk(t, s, 1, 1, "Bar")
	require.NoError(t, s.AddItem(beer.ID))
	require.NoError(t, s.ShowSummary())

	assert.ErrorIs(t, s.RemoveItem(1, fries.ID), floor.ErrNotFound)
	require.NoError(t, s.RemoveItem(1, beer.ID))
	view := s.View()
	assert.Empty(t, view.Lines)
	assert.Equal(t, StepItems, view.Step, "an empty cart leaves the summary")
}

func TestSession_UnknownTable(t *testing.T) {
	_, err := New(newFloor(t, model.StatusFree), 42, mo.None[int]())
	assert.ErrorIs(t, err, floor.ErrNotFound)
}
