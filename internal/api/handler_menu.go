package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/mo"

	"restaurant-floor-backend/internal/floor"
	"restaurant-floor-backend/internal/model"
)

type menuItemRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
}

// CreateMenuItem handles POST /api/menu. Prices are in minor units.
func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	state, err := h.floor.Dispatch(floor.AddMenuItem{Item: model.MenuItem{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
	}})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state.MenuItems[len(state.MenuItems)-1])
}

type patchMenuItemRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Price    *int64  `json:"price"`
}

// UpdateMenuItem handles PATCH /api/menu/:id. Existing order lines keep the
// price they were taken at.
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req patchMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	state, err := h.floor.Dispatch(floor.UpdateMenuItem{ItemID: id, Patch: floor.MenuItemPatch{
		Name:     mo.PointerToOption(req.Name),
		Category: mo.PointerToOption(req.Category),
		Price:    mo.PointerToOption(req.Price),
	}})
	if err != nil {
		writeError(c, err)
		return
	}
	item, _ := state.MenuItem(id)
	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem handles DELETE /api/menu/:id.
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.floor.Dispatch(floor.DeleteMenuItem{ItemID: id}); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
