package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/samber/mo"

	"restaurant-floor-backend/internal/floor"
	"restaurant-floor-backend/internal/layout"
	"restaurant-floor-backend/internal/mw"
	"restaurant-floor-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	floor    *floor.Store
	editor   *layout.Editor
	store    store.Store
	sessions *cache.Cache
	now      func() time.Time
}

// NewHandler creates a new API handler. s may be nil, in which case the
// archive-backed report is unavailable.
func NewHandler(f *floor.Store, editor *layout.Editor, s store.Store, sessions *cache.Cache) *Handler {
	return &Handler{
		floor:    f,
		editor:   editor,
		store:    s,
		sessions: sessions,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// writeError maps a floor error kind onto an HTTP status.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch floor.KindOf(err) {
	case floor.KindNotFound:
		status = http.StatusNotFound
	case floor.KindConflict, floor.KindInvalidState:
		status = http.StatusConflict
	case floor.KindValidation:
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// intParam reads a numeric path parameter, answering 400 when it is not one.
func intParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		badRequest(c, fmt.Errorf("invalid %s %q", name, c.Param(name)))
		return 0, false
	}
	return n, true
}

// waiterOf returns the signed-in staff id, which orders are attributed to.
func waiterOf(c *gin.Context) mo.Option[int] {
	if a, ok := mw.ActorFrom(c); ok {
		return mo.Some(a.ID)
	}
	return mo.None[int]()
}
