package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"ansa.app/bridge/internal/http/dto"
	"ansa.app/bridge/internal/service"
)

type EventHandler struct {
	events service.EventService
}

func NewEventHandler(events service.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// Receive handles Events API deliveries. Slack retries deliveries that do
// not come back 200, so every outcome short of a malformed payload is
// acknowledged; processing failures are logged instead of surfaced.
func (h *EventHandler) Receive(c *gin.Context) {
	ctx := c.Request.Context()

	// URL verification can arrive as a query parameter on the GET probe.
	if challenge := c.Query("challenge"); challenge != "" {
		c.String(http.StatusOK, challenge)
		return
	}

	var req dto.EventCallback
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid event payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Challenge != "" {
		c.String(http.StatusOK, req.Challenge)
		return
	}

	err := h.events.Process(ctx, service.EventParams{
		EventID:     req.EventID,
		AuthedUsers: req.AuthedUsers,
		Event:       req.Event,
	})
	if err != nil {
		slog.ErrorContext(ctx, "event processing failed",
			"event_id", req.EventID,
			"event_type", req.Event.Type,
			"error", err)
	}

	c.String(http.StatusOK, "200 OK")
}
