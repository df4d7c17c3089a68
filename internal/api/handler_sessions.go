package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"restaurant-floor-backend/internal/session"
)

// Order sessions live only in the session cache. One that is not touched
// for the session TTL expires and nothing of its cart is written.

type createSessionRequest struct {
	TableID int `json:"tableId" binding:"required"`
}

// CreateSession handles POST /api/sessions.
func (h *Handler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s, err := session.New(h.floor, req.TableID, waiterOf(c))
	if err != nil {
		writeError(c, err)
		return
	}
	h.sessions.Set(s.ID(), s, cache.DefaultExpiration)
	c.JSON(http.StatusCreated, s.View())
}

// lookupSession finds the session named by :id and refreshes its expiry.
func (h *Handler) lookupSession(c *gin.Context) (*session.Session, bool) {
	id := c.Param("id")
	v, found := h.sessions.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "session " + id + " does not exist or has expired"})
		return nil, false
	}
	s := v.(*session.Session)
	h.sessions.Set(id, s, cache.DefaultExpiration)
	return s, true
}

// sessionStep runs one step of the flow and answers with the session view.
func (h *Handler) sessionStep(c *gin.Context, step func(s *session.Session) error) {
	s, ok := h.lookupSession(c)
	if !ok {
		return
	}
	if err := step(s); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.View())
}

// GetSession handles GET /api/sessions/:id.
func (h *Handler) GetSession(c *gin.Context) {
	h.sessionStep(c, func(*session.Session) error { return nil })
}

type guestsRequest struct {
	Count int `json:"count"`
}

// ConfirmGuests handles POST /api/sessions/:id/guests.
func (h *Handler) ConfirmGuests(c *gin.Context) {
	var req guestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.sessionStep(c, func(s *session.Session) error { return s.ConfirmGuests(req.Count) })
}

type guestRequest struct {
	Guest int `json:"guest"`
}

// SelectGuest handles POST /api/sessions/:id/guest.
func (h *Handler) SelectGuest(c *gin.Context) {
	var req guestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.sessionStep(c, func(s *session.Session) error { return s.SelectGuest(req.Guest) })
}

type categoryRequest struct {
	Category string `json:"category"`
}

// SelectCategory handles POST /api/sessions/:id/category.
func (h *Handler) SelectCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.sessionStep(c, func(s *session.Session) error { return s.SelectCategory(req.Category) })
}

type sessionItemRequest struct {
	MenuItemID int `json:"menuItemId" binding:"required"`
}

// AddSessionItem handles POST /api/sessions/:id/items.
func (h *Handler) AddSessionItem(c *gin.Context) {
	var req sessionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.sessionStep(c, func(s *session.Session) error { return s.AddItem(req.MenuItemID) })
}

// RemoveSessionItem handles DELETE /api/sessions/:id/items/:menuItemId. The
// line belongs to ?guest=, defaulting to the active guest.
func (h *Handler) RemoveSessionItem(c *gin.Context) {
	menuItemID, ok := intParam(c, "menuItemId")
	if !ok {
		return
	}
	var q struct {
		Guest int `form:"guest"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	h.sessionStep(c, func(s *session.Session) error {
		guest := q.Guest
		if guest == 0 {
			guest = s.View().Guest
		}
		return s.RemoveItem(guest, menuItemID)
	})
}

// ShowSummary handles POST /api/sessions/:id/summary.
func (h *Handler) ShowSummary(c *gin.Context) {
	h.sessionStep(c, (*session.Session).ShowSummary)
}

// SessionBack handles POST /api/sessions/:id/back.
func (h *Handler) SessionBack(c *gin.Context) {
	h.sessionStep(c, (*session.Session).Back)
}

// CommitSession handles POST /api/sessions/:id/commit. A committed session
// is removed from the cache.
func (h *Handler) CommitSession(c *gin.Context) {
	s, ok := h.lookupSession(c)
	if !ok {
		return
	}
	state, err := s.Commit()
	if err != nil {
		writeError(c, err)
		return
	}
	h.sessions.Delete(s.ID())

	view := s.View()
	resp := gin.H{"session": view}
	if t, found := state.Table(view.TableID); found {
		resp["table"] = viewTable(t)
	}
	c.JSON(http.StatusOK, resp)
}

// DiscardSession handles DELETE /api/sessions/:id.
func (h *Handler) DiscardSession(c *gin.Context) {
	if _, ok := h.lookupSession(c); !ok {
		return
	}
	h.sessions.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}
