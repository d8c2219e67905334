package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"brewbyte-backend/internal/memory"
)

type memoryUpdateRequest struct {
	UserID string `json:"userId" binding:"required"`
	Event  string `json:"event" binding:"required"`
	Name   string `json:"name"`
	Item   string `json:"item"`
	Detail string `json:"detail"`
	Items  []struct {
		Name           string   `json:"name"`
		Quantity       int      `json:"quantity"`
		Customizations []string `json:"customizations"`
	} `json:"items"`
	Total float64 `json:"total"`
}

// UpdateMemory handles POST /api/memory/update: the agent reports typed
// conversation events which become weighted facts. Returns 503 when the
// memory service is not configured so the agent can stop calling it.
func (h *Handler) UpdateMemory(c *gin.Context) {
	if h.memory == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Memory service is not configured"})
		return
	}

	var req memoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and event are required"})
		return
	}

	ctx := c.Request.Context()
	var err error
	switch req.Event {
	case "user_identified":
		err = h.memory.EnsureUser(ctx, req.UserID, req.Name)
	case "order_item":
		err = h.memory.AddFacts(ctx, req.UserID, []memory.Fact{
			{Statement: fmt.Sprintf("Showed interest in %s", req.Item), Rating: 0.6},
		})
	case "preference":
		err = h.memory.AddFacts(ctx, req.UserID, []memory.Fact{
			{Statement: req.Detail, Rating: 0.9},
		})
	case "order_completed":
		lines := make([]memory.OrderLine, 0, len(req.Items))
		for _, it := range req.Items {
			lines = append(lines, memory.OrderLine{
				Name:           it.Name,
				Quantity:       it.Quantity,
				Customizations: it.Customizations,
			})
		}
		h.memory.RecordOrder(ctx, req.UserID, lines, req.Total)
	case "session_end":
		err = h.memory.EndSession(ctx, req.UserID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown memory event: " + req.Event})
		return
	}
	if err != nil {
		log.Printf("Error handling memory event %s for user %s: %v", req.Event, req.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update memory"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// MemoryFacts handles GET /api/memory/facts/:userId.
func (h *Handler) MemoryFacts(c *gin.Context) {
	if h.memory == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Memory service is not configured"})
		return
	}

	userID := c.Param("userId")
	facts, err := h.memory.UserFacts(c.Request.Context(), userID, 20)
	if err != nil {
		log.Printf("Error fetching memory facts for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch facts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId": userID,
		"facts":  facts,
	})
}
