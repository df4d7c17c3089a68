package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/mo"

	"restaurant-floor-backend/internal/floor"
	"restaurant-floor-backend/internal/geom"
	"restaurant-floor-backend/internal/layout"
	"restaurant-floor-backend/internal/model"
	"restaurant-floor-backend/internal/parse"
)

// respondTable answers with table id from state.
func respondTable(c *gin.Context, state floor.State, id int) {
	t, ok := state.Table(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("table %d does not exist", id)})
		return
	}
	c.JSON(http.StatusOK, viewTable(t))
}

type createTableRequest struct {
	Zone     string      `json:"zone" binding:"required"`
	Size     string      `json:"size"`
	Position *geom.Point `json:"position"`
}

// CreateTable handles POST /api/tables.
func (h *Handler) CreateTable(c *gin.Context) {
	var req createTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	zone := model.ZoneID(req.Zone)
	if !zone.Valid() {
		badRequest(c, fmt.Errorf("unknown zone %q", req.Zone))
		return
	}
	size := model.TableSize(req.Size)
	if req.Size != "" && !size.Valid() {
		badRequest(c, fmt.Errorf("unknown size %q", req.Size))
		return
	}

	state, err := h.editor.AddTable(model.Table{
		Zone:     zone,
		Status:   model.StatusFree,
		Size:     size,
		Position: mo.PointerToOption(req.Position),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewTable(state.Tables[len(state.Tables)-1]))
}

type updateTableRequest struct {
	Number *string `json:"number"`
	Zone   *string `json:"zone"`
	Size   *string `json:"size"`
}

// UpdateTable handles PATCH /api/tables/:id. number is the raw text of the
// number field.
func (h *Handler) UpdateTable(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req updateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	edit := layout.TableEdit{Number: mo.PointerToOption(req.Number)}
	if req.Zone != nil {
		edit.Zone = mo.Some(model.ZoneID(*req.Zone))
	}
	if req.Size != nil {
		edit.Size = mo.Some(model.TableSize(*req.Size))
	}
	state, err := h.editor.EditTable(id, edit)
	if err != nil {
		writeError(c, err)
		return
	}

	// The edit succeeded, so a given number parsed.
	if req.Number != nil {
		id, _ = parse.ParseTableNumber(*req.Number)
	}
	respondTable(c, state, id)
}

// DeleteTable handles DELETE /api/tables/:id.
func (h *Handler) DeleteTable(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.floor.Dispatch(floor.DeleteTable{TableID: id}); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type moveTableRequest struct {
	DX   float64 `json:"dx"`
	DY   float64 `json:"dy"`
	Snap *bool   `json:"snap"`
}

// MoveTable handles POST /api/tables/:id/move with the drag delta. Snapping
// is on unless snap is false.
func (h *Handler) MoveTable(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req moveTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	snap := req.Snap == nil || *req.Snap

	state, err := h.editor.MoveTable(id, geom.Point{X: req.DX, Y: req.DY}, snap)
	if err != nil {
		writeError(c, err)
		return
	}
	respondTable(c, state, id)
}

type resetLayoutRequest struct {
	Zone string `json:"zone" binding:"required"`
}

// ResetLayout handles POST /api/layout/reset.
func (h *Handler) ResetLayout(c *gin.Context) {
	var req resetLayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	zone := model.ZoneID(req.Zone)
	state, err := h.editor.ResetLayout(zone)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewTables(state.TablesInZone(zone)))
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Guests *int   `json:"guests"`
}

// SetTableStatus handles PUT /api/tables/:id/status. The caller becomes the
// table's waiter when it is occupied.
func (h *Handler) SetTableStatus(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	state, err := h.floor.Dispatch(floor.SetTableStatus{
		TableID:  id,
		Status:   model.TableStatus(req.Status),
		Guests:   mo.PointerToOption(req.Guests),
		WaiterID: waiterOf(c),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respondTable(c, state, id)
}

type addOrderItemRequest struct {
	MenuItemID int `json:"menuItemId" binding:"required"`
	Quantity   int `json:"quantity"`
	Guest      int `json:"guest"`
}

// AddOrderItem handles POST /api/tables/:id/items. The menu item is copied
// into the order line at its current price. quantity and guest default to 1.
func (h *Handler) AddOrderItem(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req addOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Guest == 0 {
		req.Guest = 1
	}

	item, found := h.floor.Snapshot().MenuItem(req.MenuItemID)
	if !found {
		writeError(c, floor.NotFound("menu item", req.MenuItemID))
		return
	}
	state, err := h.floor.Dispatch(floor.AddOrderItem{
		TableID:  id,
		Item:     model.OrderItem{MenuItem: item, Quantity: req.Quantity, GuestNumber: req.Guest},
		WaiterID: waiterOf(c),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respondTable(c, state, id)
}

// RemoveOrderItem handles DELETE /api/tables/:id/orders/:orderId/items/:index.
func (h *Handler) RemoveOrderItem(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	orderID, ok := intParam(c, "orderId")
	if !ok {
		return
	}
	index, ok := intParam(c, "index")
	if !ok {
		return
	}

	state, err := h.floor.Dispatch(floor.RemoveOrderItem{TableID: id, OrderID: orderID, ItemIndex: index})
	if err != nil {
		writeError(c, err)
		return
	}
	respondTable(c, state, id)
}

// CompleteOrder handles POST /api/tables/:id/orders/:orderId/complete and
// answers with the archived order.
func (h *Handler) CompleteOrder(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	orderID, ok := intParam(c, "orderId")
	if !ok {
		return
	}

	state, err := h.floor.Dispatch(floor.CompleteOrder{TableID: id, OrderID: orderID, WaiterID: waiterOf(c)})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state.Orders[len(state.Orders)-1])
}
