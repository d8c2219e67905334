// Package api wires the HTTP surface: realtime session minting, the agent
// tool endpoints, the barista dashboard, and push subscription management.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"brewbyte-backend/config"
	"brewbyte-backend/internal/mw"
)

// SetupRouter configures all routes and middleware.
func SetupRouter(h *Handler, cfg config.ServerConfig) *gin.Engine {
	r := gin.Default()

	started := time.Now()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(started).Round(time.Second).String(),
		})
	})

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	responseCache := cache.New(cacheTTL, 2*cacheTTL)
	cached := mw.Cache(responseCache, cacheTTL)

	api := r.Group("/api")
	api.Use(mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst))
	{
		api.GET("/session", h.CreateRealtimeSession)
		api.DELETE("/session/:id", h.DeleteSession)
		api.GET("/sessions/active", h.ActiveSessions)

		tools := api.Group("/tools")
		{
			tools.GET("/menu", cached, h.GetMenu)
			tools.POST("/user", h.PostUser)
			tools.POST("/confirm", h.ConfirmOrder)
			tools.POST("/order", h.SubmitOrder)
			tools.GET("/history", h.GetHistory)
			tools.POST("/suggestions", h.GetSuggestions)
		}

		orders := api.Group("/orders")
		{
			orders.GET("/active", h.ActiveOrders)
			orders.PUT("/:id/status", h.UpdateOrderStatus)
		}

		analytics := api.Group("/analytics")
		analytics.Use(cached)
		{
			analytics.GET("/sales", h.SalesToday)
			analytics.GET("/weekly", h.WeeklySales)
			analytics.GET("/popular", h.PopularItems)
			analytics.GET("/revenue", h.RevenueByCategory)
		}

		memory := api.Group("/memory")
		{
			memory.POST("/update", h.UpdateMemory)
			memory.GET("/facts/:userId", h.MemoryFacts)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("/vapid_public_key", h.VapidPublicKey)
			notifications.PUT("/subscriptions", h.Subscribe)
			notifications.DELETE("/subscriptions", h.Unsubscribe)
		}
	}

	return r
}
