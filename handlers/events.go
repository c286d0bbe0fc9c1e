package handlers

import (
	"io"
	"net/http"

	"tomato-client/notify"
	"tomato-client/session"
	"tomato-client/statemachine"
	"tomato-client/storage"

	"github.com/gin-gonic/gin"
)

// notificationHistoryLimit caps the notifications view.
const notificationHistoryLimit = 50

// EventsHandler streams live toasts to the browser and serves the
// notification history.
type EventsHandler struct {
	hub     *notify.Hub
	store   *storage.Store
	session *session.Store
}

func NewEventsHandler(hub *notify.Hub, store *storage.Store, s *session.Store) *EventsHandler {
	return &EventsHandler{hub: hub, store: store, session: s}
}

// Stream is the server-sent events feed the toast layer listens on. One
// subscription per open tab; the subscription dies with the request.
func (h *EventsHandler) Stream(c *gin.Context) {
	toasts, cancel := h.hub.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case toast, ok := <-toasts:
			if !ok {
				return false
			}
			c.SSEvent("toast", toast)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// Notifications returns the persisted toast history, newest first.
func (h *EventsHandler) Notifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"notifications": h.store.Notifications(notificationHistoryLimit),
	})
}

// ClearNotifications empties the history.
func (h *EventsHandler) ClearNotifications(c *gin.Context) {
	if err := h.store.ClearNotifications(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error clearing notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All alerts muted"})
}

// RealtimeStatus reports whether the push connection is up; the navbar shows
// a live/offline dot from this.
func (h *EventsHandler) RealtimeStatus(c *gin.Context) {
	connected := false
	if channel := h.session.Channel(); channel != nil {
		connected = channel.Connected()
	}
	c.JSON(http.StatusOK, gin.H{"connected": connected})
}

// StateMachineInfo documents the order lifecycle for docs and debugging.
func (h *EventsHandler) StateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"description": "Order statuses move strictly forward; each transition belongs to one actor.",
		"transitions": statemachine.AllTransitions(),
	})
}
