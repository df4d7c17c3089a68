// Package stats projects the completed-order history into per-waiter reports.
// It only reads snapshots and never feeds back into the floor store.
package stats

import (
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"

	"restaurant-floor-backend/internal/floor"
	"restaurant-floor-backend/internal/model"
)

// TopCategoryCount is how many categories WaiterStats.TopCategories lists.
const TopCategoryCount = 5

// CategoryStats aggregates the lines of one menu category.
type CategoryStats struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Revenue  int64  `json:"revenue"`
}

// WaiterStats is the report for one waiter. Working hours are not part of
// it: work sessions are not recorded by this service.
type WaiterStats struct {
	WaiterID          int                  `json:"waiterId"`
	TotalOrders       int                  `json:"totalOrders"`
	TotalRevenue      int64                `json:"totalRevenue"`
	AverageOrderValue float64              `json:"averageOrderValue"`
	TablesServed      int                  `json:"tablesServed"`
	OrdersToday       int                  `json:"ordersToday"`
	RevenueToday      int64                `json:"revenueToday"`
	OrdersThisWeek    int                  `json:"ordersThisWeek"`
	RevenueThisWeek   int64                `json:"revenueThisWeek"`
	OrdersThisMonth   int                  `json:"ordersThisMonth"`
	RevenueThisMonth  int64                `json:"revenueThisMonth"`
	LastOrderTime     mo.Option[time.Time] `json:"lastOrderTime"`
	TopCategories     []CategoryStats      `json:"topCategories"`
	PerformanceRating int                  `json:"performanceRating"`
}

// ForWaiter builds the report for waiterID from s. Day, week (starting
// Sunday) and month boundaries are taken in now's location.
func ForWaiter(s floor.State, waiterID int, now time.Time) WaiterStats {
	orders := lo.Filter(s.Orders, func(o model.Order, _ int) bool {
		id, ok := o.WaiterID.Get()
		return ok && id == waiterID
	})

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	served := lo.CountBy(s.Tables, func(t model.Table) bool {
		id, ok := t.WaiterID.Get()
		return ok && id == waiterID
	})

	st := WaiterStats{
		WaiterID:      waiterID,
		TotalOrders:   len(orders),
		TablesServed:  served,
		TopCategories: topCategories(orders),
	}
	st.OrdersToday, st.RevenueToday = since(orders, today)
	st.OrdersThisWeek, st.RevenueThisWeek = since(orders, weekStart)
	st.OrdersThisMonth, st.RevenueThisMonth = since(orders, monthStart)
	st.TotalRevenue = lo.SumBy(orders, func(o model.Order) int64 { return o.TotalAmount })
	if len(orders) > 0 {
		st.AverageOrderValue = float64(st.TotalRevenue) / float64(len(orders))
		last := lo.MaxBy(orders, func(a, b model.Order) bool { return a.Timestamp.After(b.Timestamp) })
		st.LastOrderTime = mo.Some(last.Timestamp)
	}
	st.PerformanceRating = Rating(st.TotalOrders, st.TotalRevenue)
	return st
}

// Rating scores a waiter from 1 to 5 stars.
func Rating(orders int, revenue int64) int {
	rating := 1
	if orders > 10 {
		rating++
	}
	if revenue > 50000 {
		rating++
	}
	if orders > 0 && float64(revenue)/float64(orders) > 1500 {
		rating++
	}
	if orders > 50 {
		rating++
	}
	return rating
}

func since(orders []model.Order, from time.Time) (int, int64) {
	in := lo.Filter(orders, func(o model.Order, _ int) bool { return !o.Timestamp.Before(from) })
	return len(in), lo.SumBy(in, func(o model.Order) int64 { return o.TotalAmount })
}

func topCategories(orders []model.Order) []CategoryStats {
	lines := lo.FlatMap(orders, func(o model.Order, _ int) []model.OrderItem { return o.Items })
	grouped := lo.GroupBy(lines, func(i model.OrderItem) string { return i.MenuItem.Category })

	out := make([]CategoryStats, 0, len(grouped))
	for category, items := range grouped {
		out = append(out, CategoryStats{
			Category: category,
			Count:    lo.SumBy(items, func(i model.OrderItem) int { return i.Quantity }),
			Revenue:  lo.SumBy(items, func(i model.OrderItem) int64 { return i.Subtotal() }),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Category < out[j].Category
	})
	if len(out) > TopCategoryCount {
		out = out[:TopCategoryCount]
	}
	return out
}
