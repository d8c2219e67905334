package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// CreateRealtimeSession handles GET /api/session: it mints an ephemeral
// realtime credential, creates the backing conversation session, and returns
// the provider payload with the local session id merged in.
func (h *Handler) CreateRealtimeSession(c *gin.Context) {
	ctx := c.Request.Context()

	payload, err := h.realtime.CreateSession(ctx)
	if err != nil {
		log.Printf("Error creating realtime session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create realtime session"})
		return
	}

	sessionID := h.sessions.GenerateID()
	if _, err := h.sessions.GetOrCreate(ctx, sessionID, ""); err != nil {
		log.Printf("Error persisting session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create realtime session"})
		return
	}

	log.Printf("Created realtime session %s", sessionID)
	payload["sessionId"] = sessionID
	c.JSON(http.StatusOK, payload)
}

// DeleteSession handles DELETE /api/session/:id.
func (h *Handler) DeleteSession(c *gin.Context) {
	id := c.Param("id")

	session, err := h.store.GetSession(c.Request.Context(), id)
	if err != nil {
		log.Printf("Error reading session %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
		return
	}
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	if h.memory != nil && session.UserID != "" {
		if err := h.memory.EndSession(c.Request.Context(), session.UserID); err != nil {
			log.Printf("Error ending memory session for user %s: %v", session.UserID, err)
		}
	}

	if _, err := h.sessions.Clear(c.Request.Context(), id); err != nil {
		log.Printf("Error deleting session %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session ended"})
}

// ActiveSessions handles GET /api/sessions/active. The optional minutes query
// widens or narrows the trailing activity window, defaulting to 15.
func (h *Handler) ActiveSessions(c *gin.Context) {
	minutes := 15
	if raw := c.Query("minutes"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minutes must be a positive integer"})
			return
		}
		minutes = parsed
	}

	sessions, err := h.sessions.ActiveSessions(c.Request.Context(), time.Duration(minutes)*time.Minute)
	if err != nil {
		log.Printf("Error listing active sessions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch active sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(sessions),
		"sessions": sessions,
	})
}
