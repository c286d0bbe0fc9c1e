package models

import (
	"strings"
	"time"
)

// OrderStatus represents all possible states of a food delivery order. The
// machine itself lives in the backend; the client only renders the current
// state and offers the next transition.
type OrderStatus string

const (
	StatusPlaced        OrderStatus = "placed"
	StatusAccepted      OrderStatus = "accepted"
	StatusPreparing     OrderStatus = "preparing"
	StatusReadyForRider OrderStatus = "ready_for_rider"
	StatusPickedUp      OrderStatus = "picked_up"
	StatusOnTheWay      OrderStatus = "on_the_way"
	StatusDelivered     OrderStatus = "delivered"
	StatusCancelled     OrderStatus = "cancelled"
)

// statusLabels are the badge texts for the known forward chain.
var statusLabels = map[OrderStatus]string{
	StatusPlaced:        "Order Placed",
	StatusAccepted:      "Accepted",
	StatusPreparing:     "Preparing",
	StatusReadyForRider: "Ready for Pickup",
	StatusPickedUp:      "Picked Up",
	StatusOnTheWay:      "On the Way",
	StatusDelivered:     "Delivered",
	StatusCancelled:     "Cancelled",
}

// Label returns the badge text for a status. Statuses outside the known set
// fall back to a readable transform of the raw string rather than rendering
// the raw enum value.
func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return strings.ReplaceAll(string(s), "_", " ")
}

// Terminal reports whether the status ends the forward chain.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// OrderItem is one snapshot line of a placed order. Quantity keeps the
// backend's "quauntity" wire spelling, same as the cart.
type OrderItem struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quauntity"`
}

// OrderAddress is the delivery address copied into the order at creation.
// The backend serializes the address text as "fromattedAddress" here (unlike
// the address book's "formattedAddress"); both spellings are server contract.
type OrderAddress struct {
	FormattedAddress string `json:"fromattedAddress"`
	Mobile           int64  `json:"mobile"`
}

// Order is immutable from the customer's perspective once placed; only the
// status moves, and only through server pushes and staff/rider actions.
type Order struct {
	ID              string       `json:"_id"`
	RestaurantName  string       `json:"restaurantName"`
	Items           []OrderItem  `json:"items"`
	TotalAmount     float64      `json:"totalAmount"`
	Status          OrderStatus  `json:"status"`
	PaymentStatus   string       `json:"paymentStatus"`
	DeliveryAddress OrderAddress `json:"deliveryAddress"`
	CreatedAt       time.Time    `json:"createdAt"`
}
