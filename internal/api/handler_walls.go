package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-floor-backend/internal/geom"
	"restaurant-floor-backend/internal/model"
)

type drawWallRequest struct {
	Zone   string       `json:"zone" binding:"required"`
	Points []geom.Point `json:"points" binding:"required"`
}

// DrawWall handles POST /api/walls/draw. points is the pointer trace from
// pointer-down to pointer-up.
func (h *Handler) DrawWall(c *gin.Context) {
	var req drawWallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	state, err := h.editor.DrawWall(model.ZoneID(req.Zone), req.Points)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state.Walls[len(state.Walls)-1])
}

// DeleteWall handles DELETE /api/walls/:id.
func (h *Handler) DeleteWall(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.editor.DeleteWall(id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
