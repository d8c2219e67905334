package api

import (
	"context"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"brewbyte-backend/internal/memory"
	"brewbyte-backend/internal/menu"
	"brewbyte-backend/internal/model"
	"brewbyte-backend/internal/pricing"
)

const (
	historyLimit = 50
	// userTypeScanLimit bounds the history scan used for classification.
	userTypeScanLimit = 100
)

// GetMenu handles GET /api/tools/menu.
func (h *Handler) GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, menu.Catalog)
}

type userRequest struct {
	Name      string `json:"name" binding:"required"`
	SessionID string `json:"sessionId"`
}

// userTypeFor classifies a customer by how many orders they have placed.
func userTypeFor(orderCount int) string {
	switch {
	case orderCount >= 10:
		return "vip"
	case orderCount >= 5:
		return "regular"
	case orderCount >= 1:
		return "returning"
	default:
		return "new"
	}
}

func greetingFor(name string, orderCount int) string {
	if orderCount == 0 {
		return fmt.Sprintf("Nice to meet you, %s! Welcome to Brew & Byte Café.", name)
	}
	plural := ""
	if orderCount > 1 {
		plural = "s"
	}
	return fmt.Sprintf("Welcome back, %s! Great to see you again. You've been here %d time%s.", name, orderCount, plural)
}

// PostUser handles POST /api/tools/user: find-or-create by name, classify,
// and bind the result to the session when one is given.
func (h *Handler) PostUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	ctx := c.Request.Context()
	log.Printf("Finding or creating user: %s", req.Name)

	user, err := h.store.FindUserByName(ctx, req.Name)
	if err != nil {
		log.Printf("Error finding user %q: %v", req.Name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process user"})
		return
	}
	if user == nil {
		user = &model.User{ID: model.UserIDForName(req.Name), Name: req.Name}
		if err := h.store.UpsertUser(ctx, user); err != nil {
			log.Printf("Error creating user %q: %v", req.Name, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process user"})
			return
		}
		log.Printf("Created new user: %s (%s)", user.ID, user.Name)
	} else {
		log.Printf("Found existing user: %s (%s)", user.ID, user.Name)
	}

	history, err := h.store.UserOrderHistory(ctx, user.ID, userTypeScanLimit)
	if err != nil {
		log.Printf("Error loading history for user %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process user"})
		return
	}
	orderCount := len(history)
	userType := userTypeFor(orderCount)

	if req.SessionID != "" {
		_, err := h.sessions.SetUserInfo(ctx, req.SessionID, user.ID, model.SessionUserInfo{
			Name:       user.Name,
			UserType:   userType,
			OrderCount: orderCount,
		})
		if err != nil {
			log.Printf("Error binding user %s to session %s: %v", user.ID, req.SessionID, err)
		}
	}

	if h.memory != nil {
		if err := h.memory.EnsureUser(ctx, user.ID, user.Name); err != nil {
			log.Printf("Error registering user %s with memory service: %v", user.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":      user.ID,
		"name":        user.Name,
		"userType":    userType,
		"isReturning": orderCount > 0,
		"orderCount":  orderCount,
		"greeting":    greetingFor(user.Name, orderCount),
	})
}

type confirmRequest struct {
	Items  []pricing.RequestItem `json:"items" binding:"required"`
	UserID string                `json:"userId"`
}

type confirmedLine struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Quantity       int      `json:"quantity"`
	Customizations []string `json:"customizations"`
	Price          float64  `json:"price"`
}

// ConfirmOrder handles POST /api/tools/confirm: a pricing preview with no
// persistence.
func (h *Handler) ConfirmOrder(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Items array is required"})
		return
	}

	log.Printf("Confirming order for user %s (%d items)", req.UserID, len(req.Items))
	quote := pricing.BuildQuote(req.Items)

	lines := make([]confirmedLine, 0, len(quote.Lines))
	for _, l := range quote.Lines {
		lines = append(lines, confirmedLine{
			Name:           l.Name,
			Description:    l.Description,
			Quantity:       l.Quantity,
			Customizations: l.Customizations,
			Price:          l.Price,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"items":    lines,
		"subtotal": pricing.FormatAmount(quote.Subtotal),
		"tax":      pricing.FormatAmount(quote.Tax),
		"total":    pricing.FormatAmount(quote.Total),
		"message":  fmt.Sprintf("Your order total is $%s. Would you like to confirm this order?", pricing.FormatAmount(quote.Total)),
	})
}

type submitRequest struct {
	Items  []pricing.RequestItem `json:"items" binding:"required"`
	UserID string                `json:"userId" binding:"required"`
	Total  *float64              `json:"total"`
}

// SubmitOrder handles POST /api/tools/order. Pricing is always recomputed
// server-side through the same quote as ConfirmOrder; a client-supplied total
// is only checked, never trusted.
func (h *Handler) SubmitOrder(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Items and userId are required"})
		return
	}

	ctx := c.Request.Context()
	log.Printf("Submitting order for user %s", req.UserID)

	quote := pricing.BuildQuote(req.Items)
	if req.Total != nil && math.Abs(*req.Total-quote.Total) > 0.01 {
		log.Printf("Warning: client total %.2f disagrees with server total %.2f for user %s; using server total",
			*req.Total, quote.Total, req.UserID)
	}

	items := make([]model.OrderItem, 0, len(quote.Lines))
	for _, l := range quote.Lines {
		items = append(items, model.OrderItem{
			ItemID:         l.ItemID,
			ItemName:       l.Name,
			Category:       l.Category,
			Subcategory:    l.Subcategory,
			Size:           l.Size,
			Temperature:    l.Temperature,
			Price:          l.Price / float64(l.Quantity),
			Quantity:       l.Quantity,
			Customizations: l.Customizations,
		})
	}

	order := &model.Order{
		UserID: req.UserID,
		Total:  quote.Total,
		Status: model.StatusPreparing,
		Items:  items,
	}
	if err := h.store.CreateOrder(ctx, order); err != nil {
		log.Printf("Error submitting order for user %s: %v", req.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit order"})
		return
	}

	if h.memory != nil {
		lines := make([]memory.OrderLine, 0, len(quote.Lines))
		for _, l := range quote.Lines {
			lines = append(lines, memory.OrderLine{
				Name:           l.Name,
				Quantity:       l.Quantity,
				Customizations: l.Customizations,
			})
		}
		go h.memory.RecordOrder(context.Background(), req.UserID, lines, quote.Total)
	}

	estimated := pricing.EstimateMinutes(quote.TotalQuantity())
	c.JSON(http.StatusOK, gin.H{
		"orderId":       fmt.Sprintf("%d", order.ID),
		"status":        "confirmed",
		"estimatedTime": fmt.Sprintf("%d minutes", estimated),
		"message": fmt.Sprintf("Perfect! Your order #%d has been placed and will be ready in about %d minutes. We'll call your name when it's ready!",
			order.ID, estimated),
	})
}

type historyOrder struct {
	OrderID int64             `json:"orderId"`
	Date    time.Time         `json:"date"`
	Items   []model.OrderItem `json:"items"`
	Total   float64           `json:"total"`
	Status  string            `json:"status"`
}

// GetHistory handles GET /api/tools/history.
func (h *Handler) GetHistory(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	log.Printf("Fetching order history for user %s", userID)
	orders, err := h.store.UserOrderHistory(c.Request.Context(), userID, historyLimit)
	if err != nil {
		log.Printf("Error fetching order history for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order history"})
		return
	}

	formatted := make([]historyOrder, 0, len(orders))
	for _, o := range orders {
		formatted = append(formatted, historyOrder{
			OrderID: o.ID,
			Date:    o.CreatedAt,
			Items:   o.Items,
			Total:   o.Total,
			Status:  o.Status,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":     userID,
		"orderCount": len(formatted),
		"orders":     formatted,
	})
}

type suggestionsRequest struct {
	UserID              string            `json:"userId" binding:"required"`
	SessionID           string            `json:"sessionId"`
	CurrentItem         *model.ItemRef    `json:"currentItem"`
	ConversationContext map[string]string `json:"conversationContext"`
}

// GetSuggestions handles POST /api/tools/suggestions.
func (h *Handler) GetSuggestions(c *gin.Context) {
	var req suggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	suggestions, err := h.generator.Generate(c.Request.Context(), req.UserID, req.SessionID, req.CurrentItem, req.ConversationContext)
	if err != nil {
		log.Printf("Error generating suggestions for user %s: %v", req.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate suggestions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
