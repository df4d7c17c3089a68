package main

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"

	"restaurant-floor-backend/internal/floor"
	"restaurant-floor-backend/internal/model"
)

func TestDump(t *testing.T) {
	color.NoColor = true
	soup := model.MenuItem{ID: 1, Name: "Soup", Category: "Mains", Price: 450}

	testCases := []struct {
		name     string
		state    floor.State
		contains []string
	}{
		{
			name: "tables grouped by zone",
			state: floor.State{
				Tables: []model.Table{
					{ID: 4, Zone: model.ZoneBowling, Status: model.StatusFree, Size: model.SizeSmall},
					{ID: 2, Zone: model.ZoneBowling, Status: model.StatusOccupied, Guests: 3, Size: model.SizeLarge, Orders: []model.Order{{
						ID: 9, TableID: 2, TotalAmount: 900,
						Items: []model.OrderItem{{MenuItem: soup, Quantity: 2, GuestNumber: 1}},
					}}},
					{ID: 1, Zone: model.ZoneFree, Status: model.StatusClosed, Size: model.SizeMedium},
				},
				MenuItems: []model.MenuItem{soup},
				Orders:    []model.Order{{ID: 3, TableID: 1, IsCompleted: true, WaiterID: mo.Some(7)}},
			},
			contains: []string{
				"Bowling (2 tables, 0 walls)",
				"#2   occupied large  guests=3 open order #9 total=900",
				"#4   free     small  guests=0",
				"Free zone (1 tables, 0 walls)",
				"1 menu items, 1 completed orders",
			},
		},
		{
			name: "status without a colour",
			state: floor.State{
				Tables: []model.Table{{ID: 1, Zone: model.ZoneFree}},
			},
			contains: []string{"#1 ", "guests=0"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.NotPanics(t, func() { dump(&buf, tc.state) })
			for _, want := range tc.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}

	t.Run("tables in id order", func(t *testing.T) {
		var buf bytes.Buffer
		dump(&buf, testCases[0].state)
		out := buf.String()
		assert.Less(t, bytes.Index([]byte(out), []byte("#2 ")), bytes.Index([]byte(out), []byte("#4 ")))
	})
}
