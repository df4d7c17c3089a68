package api

import (
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"restaurant-floor-backend/config"
	"restaurant-floor-backend/internal/floor"
	"restaurant-floor-backend/internal/geom"
	"restaurant-floor-backend/internal/layout"
	"restaurant-floor-backend/internal/mw"
	"restaurant-floor-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(f *floor.Store, s store.Store, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	editor := layout.NewEditor(f, layout.Config{
		GridPitch: cfg.Layout.GridPitch,
		Bounds:    geom.Bounds{MaxX: cfg.Layout.CanvasX, MaxY: cfg.Layout.CanvasY},
		MaxTables: cfg.Layout.MaxTables,
	})
	sessions := cache.New(cfg.Server.SessionTTL, 2*cfg.Server.SessionTTL)
	handler := NewHandler(f, editor, s, sessions)

	// Every committed intent bumps the generation, which retires cached reads.
	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	var generation atomic.Uint64
	f.Subscribe(func(floor.State) {
		generation.Add(1)
		cacheStore.Flush()
	})
	caching := mw.Cache(cacheStore, cacheTTL, generation.Load)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst, cfg.Server.RequestIPHeader)
	admin := mw.RequireRole(mw.RoleAdmin, mw.RoleManager)
	staff := mw.RequireRole(mw.RoleAdmin, mw.RoleManager, mw.RoleWaiter)

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter, mw.Identify())
	{
		api.GET("/floor", caching, handler.GetFloor)
		api.GET("/zones", caching, handler.GetZones)
		api.GET("/tables", caching, handler.ListTables)
		api.GET("/tables/:id", handler.GetTable)
		api.GET("/walls", caching, handler.ListWalls)
		api.GET("/menu", caching, handler.ListMenu)

		// Layout and menu administration.
		api.POST("/tables", admin, handler.CreateTable)
		api.PATCH("/tables/:id", admin, handler.UpdateTable)
		api.DELETE("/tables/:id", admin, handler.DeleteTable)
		api.POST("/tables/:id/move", admin, handler.MoveTable)
		api.POST("/layout/reset", admin, handler.ResetLayout)
		api.POST("/walls/draw", admin, handler.DrawWall)
		api.DELETE("/walls/:id", admin, handler.DeleteWall)
		api.POST("/menu", admin, handler.CreateMenuItem)
		api.PATCH("/menu/:id", admin, handler.UpdateMenuItem)
		api.DELETE("/menu/:id", admin, handler.DeleteMenuItem)

		// Service.
		api.PUT("/tables/:id/status", staff, handler.SetTableStatus)
		api.POST("/tables/:id/items", staff, handler.AddOrderItem)
		api.DELETE("/tables/:id/orders/:orderId/items/:index", staff, handler.RemoveOrderItem)
		api.POST("/tables/:id/orders/:orderId/complete", staff, handler.CompleteOrder)

		sessionRoutes := api.Group("/sessions", staff)
		sessionRoutes.POST("", handler.CreateSession)
		sessionRoutes.GET("/:id", handler.GetSession)
		sessionRoutes.POST("/:id/guests", handler.ConfirmGuests)
		sessionRoutes.POST("/:id/guest", handler.SelectGuest)
		sessionRoutes.POST("/:id/category", handler.SelectCategory)
		sessionRoutes.POST("/:id/items", handler.AddSessionItem)
		sessionRoutes.DELETE("/:id/items/:menuItemId", handler.RemoveSessionItem)
		sessionRoutes.POST("/:id/summary", handler.ShowSummary)
		sessionRoutes.POST("/:id/back", handler.SessionBack)
		sessionRoutes.POST("/:id/commit", handler.CommitSession)
		sessionRoutes.DELETE("/:id", handler.DiscardSession)

		// Reports.
		api.GET("/stats/waiters/:id", staff, handler.GetWaiterStats)
		api.GET("/reports/orders", admin, handler.GetOrderReport)
	}

	return r
}
