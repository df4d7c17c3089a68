package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"restaurant-floor-backend/internal/model"
)

// tableView adds the rendering hints a hall view needs.
type tableView struct {
	model.Table
	Pixels int `json:"pixels"`
}

func viewTable(t model.Table) tableView {
	return tableView{Table: t, Pixels: t.Size.Pixels()}
}

func viewTables(tables []model.Table) []tableView {
	return lo.Map(tables, func(t model.Table, _ int) tableView { return viewTable(t) })
}

// zoneQuery reads the optional ?zone= filter. ok is false after a 400.
func zoneQuery(c *gin.Context) (zone model.ZoneID, filter bool, ok bool) {
	raw, present := c.GetQuery("zone")
	if !present || raw == "" {
		return "", false, true
	}
	zone = model.ZoneID(raw)
	if !zone.Valid() {
		badRequest(c, fmt.Errorf("unknown zone %q", raw))
		return "", false, false
	}
	return zone, true, true
}

// GetFloor returns the whole snapshot.
func (h *Handler) GetFloor(c *gin.Context) {
	c.JSON(http.StatusOK, h.floor.Snapshot())
}

type zoneView struct {
	model.Zone
	Tables int `json:"tables"`
	Walls  int `json:"walls"`
}

// GetZones lists the zones with how many tables and walls each holds.
func (h *Handler) GetZones(c *gin.Context) {
	s := h.floor.Snapshot()
	c.JSON(http.StatusOK, lo.Map(model.Zones, func(z model.Zone, _ int) zoneView {
		return zoneView{Zone: z, Tables: len(s.TablesInZone(z.ID)), Walls: len(s.WallsInZone(z.ID))}
	}))
}

// ListTables handles GET /api/tables?zone=.
func (h *Handler) ListTables(c *gin.Context) {
	zone, filter, ok := zoneQuery(c)
	if !ok {
		return
	}
	s := h.floor.Snapshot()
	tables := s.Tables
	if filter {
		tables = s.TablesInZone(zone)
	}
	c.JSON(http.StatusOK, viewTables(tables))
}

// GetTable returns one table with how long it has been occupied. It is not
// cached, since the elapsed time moves.
func (h *Handler) GetTable(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	t, found := h.floor.Snapshot().Table(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("table %d does not exist", id)})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"table":          viewTable(t),
		"elapsedSeconds": int64(t.Elapsed(h.now()).Seconds()),
	})
}

// ListWalls handles GET /api/walls?zone=.
func (h *Handler) ListWalls(c *gin.Context) {
	zone, filter, ok := zoneQuery(c)
	if !ok {
		return
	}
	s := h.floor.Snapshot()
	walls := s.Walls
	if filter {
		walls = s.WallsInZone(zone)
	}
	c.JSON(http.StatusOK, lo.Ternary(walls == nil, []model.Wall{}, walls))
}

// ListMenu handles GET /api/menu?category=.
func (h *Handler) ListMenu(c *gin.Context) {
	items := h.floor.Snapshot().MenuItems
	if category := c.Query("category"); category != "" {
		if !model.ValidCategory(category) {
			badRequest(c, fmt.Errorf("unknown category %q", category))
			return
		}
		items = lo.Filter(items, func(m model.MenuItem, _ int) bool { return m.Category == category })
	}
	c.JSON(http.StatusOK, lo.Ternary(items == nil, []model.MenuItem{}, items))
}
