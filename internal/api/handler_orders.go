package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"brewbyte-backend/internal/model"
	"brewbyte-backend/internal/store"
)

// ActiveOrders handles GET /api/orders/active: the barista-facing queue of
// orders not yet picked up or cancelled.
func (h *Handler) ActiveOrders(c *gin.Context) {
	orders, err := h.store.ActiveOrders(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching active orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch active orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(orders),
		"orders": orders,
	})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus handles PUT /api/orders/:id/status. Transitions only move
// forward; an order reaching ready wakes the notification pool.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !model.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid status is required"})
		return
	}

	if err := h.store.UpdateOrderStatus(c.Request.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, store.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			log.Printf("Error updating order %d status: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		}
		return
	}

	log.Printf("Order %d moved to %s", id, req.Status)
	if req.Status == model.StatusReady && h.pool != nil {
		h.pool.Dispatch(id)
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId": id,
		"status":  req.Status,
	})
}
