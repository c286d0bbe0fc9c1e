package realtime

import (
	"fmt"

	"tomato-client/notify"
)

// Server push event names.
const (
	EventOrderUpdate    = "order:update"
	EventOrderAvailable = "order:available"
	EventRiderAssigned  = "order:rider_assigned"
)

// statusMessages maps an order:update status to its toast copy.
var statusMessages = map[string]string{
	"accepted":        "🟢 Your order has been accepted!",
	"preparing":       "👨‍🍳 Your order is being prepared",
	"ready_for_rider": "📦 Order is ready for pickup",
	"picked_up":       "🚴 Rider has picked up your order",
	"on_the_way":      "🛵 Your order is on the way!",
	"delivered":       "✅ Order delivered!",
}

// StatusMessage returns the toast copy for a status, with a generic fallback
// for anything outside the known set.
func StatusMessage(status string) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return fmt.Sprintf("Order updated: %s", status)
}

// BindToasts registers the session-global toast listeners. Views register
// their own refetch handlers separately; these only produce notifications.
// The returned unsubscribes die with the channel on Close, so they are not
// tracked by callers.
func BindToasts(c *Channel, hub *notify.Hub) {
	c.On(EventOrderUpdate, func(payload map[string]any) {
		status, _ := payload["status"].(string)
		hub.Push(notify.Toast{
			Level:   notify.LevelInfo,
			Message: StatusMessage(status),
			Event:   EventOrderUpdate,
		})
	})

	c.On(EventOrderAvailable, func(payload map[string]any) {
		hub.Push(notify.Toast{
			Level:   notify.LevelAlert,
			Message: "🔔 New order available for delivery!",
			Event:   EventOrderAvailable,
		})
	})

	c.On(EventRiderAssigned, func(payload map[string]any) {
		hub.Push(notify.Toast{
			Level:   notify.LevelInfo,
			Message: "🚴 A rider has been assigned to the order",
			Event:   EventRiderAssigned,
		})
	})
}
