package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/samber/mo"

	"restaurant-floor-backend/internal/model"
	"restaurant-floor-backend/internal/mw"
	"restaurant-floor-backend/internal/stats"
)

// GetWaiterStats handles GET /api/stats/waiters/:id. Waiters may only read
// their own report.
func (h *Handler) GetWaiterStats(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if a, _ := mw.ActorFrom(c); a.Role == mw.RoleWaiter && a.ID != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "waiters may only read their own stats"})
		return
	}
	c.JSON(http.StatusOK, stats.ForWaiter(h.floor.Snapshot(), id, h.now()))
}

type orderReport struct {
	Since   mo.Option[time.Time] `json:"since"`
	Count   int                  `json:"count"`
	Revenue int64                `json:"revenue"`
	Orders  []model.Order        `json:"orders"`
}

// GetOrderReport handles GET /api/reports/orders?since=&waiter=, reading the
// order archive. since is RFC 3339.
func (h *Handler) GetOrderReport(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "order archive is not configured"})
		return
	}

	var since time.Time
	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			badRequest(c, fmt.Errorf("invalid since %q: %w", raw, err))
			return
		}
		since = t.UTC()
	}
	waiter := mo.None[int]()
	if raw := c.Query("waiter"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, fmt.Errorf("invalid waiter %q", raw))
			return
		}
		waiter = mo.Some(n)
	}

	orders, err := h.store.OrderHistory(c.Request.Context(), since, waiter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderReport{
		Since:   lo.Ternary(since.IsZero(), mo.None[time.Time](), mo.Some(since)),
		Count:   len(orders),
		Revenue: lo.SumBy(orders, func(o model.Order) int64 { return o.TotalAmount }),
		Orders:  orders,
	})
}
