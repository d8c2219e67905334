package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const popularItemsLimit = 10

// SalesToday handles GET /api/analytics/sales.
func (h *Handler) SalesToday(c *gin.Context) {
	summary, err := h.store.TodaySales(c.Request.Context(), time.Now().UTC())
	if err != nil {
		log.Printf("Error fetching today's sales: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// WeeklySales handles GET /api/analytics/weekly: a zero-filled series of the
// trailing seven days.
func (h *Handler) WeeklySales(c *gin.Context) {
	series, err := h.store.WeeklySales(c.Request.Context(), time.Now().UTC())
	if err != nil {
		log.Printf("Error fetching weekly sales: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch weekly sales"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": series})
}

// PopularItems handles GET /api/analytics/popular.
func (h *Handler) PopularItems(c *gin.Context) {
	items, err := h.store.PopularItems(c.Request.Context(), popularItemsLimit)
	if err != nil {
		log.Printf("Error fetching popular items: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch popular items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// RevenueByCategory handles GET /api/analytics/revenue.
func (h *Handler) RevenueByCategory(c *gin.Context) {
	categories, err := h.store.RevenueByCategory(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching revenue by category: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch revenue"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
