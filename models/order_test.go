package models

import (
	"encoding/json"
	"testing"
)

func TestStatusLabelKnown(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   string
	}{
		{StatusPlaced, "Order Placed"},
		{StatusReadyForRider, "Ready for Pickup"},
		{StatusOnTheWay, "On the Way"},
		{StatusDelivered, "Delivered"},
	}
	for _, tt := range tests {
		if got := tt.status.Label(); got != tt.want {
			t.Errorf("Label(%s) = %q; want %q", tt.status, got, tt.want)
		}
	}
}

func TestStatusLabelUnknownFallsBack(t *testing.T) {
	if got := OrderStatus("refund_pending").Label(); got != "refund pending" {
		t.Errorf("unknown status label = %q; want %q", got, "refund pending")
	}
}

func TestStatusTerminal(t *testing.T) {
	if !StatusDelivered.Terminal() || !StatusCancelled.Terminal() {
		t.Error("delivered and cancelled must be terminal")
	}
	if StatusOnTheWay.Terminal() {
		t.Error("on_the_way must not be terminal")
	}
}

// The backends misspell two wire fields; the structs must keep those exact
// names or decoding silently drops the values.
func TestOrderWireSpellings(t *testing.T) {
	payload := []byte(`{
		"_id": "o1",
		"items": [{"itemId": "i1", "name": "Paneer Roll", "price": 120, "quauntity": 2}],
		"deliveryAddress": {"fromattedAddress": "12 MG Road", "mobile": 9876543210},
		"status": "placed"
	}`)

	var order Order
	if err := json.Unmarshal(payload, &order); err != nil {
		t.Fatalf("unmarshal order: %v", err)
	}
	if order.Items[0].Quantity != 2 {
		t.Errorf("quantity = %d; want 2 (quauntity wire name)", order.Items[0].Quantity)
	}
	if order.DeliveryAddress.FormattedAddress != "12 MG Road" {
		t.Errorf("address = %q; want decoded fromattedAddress", order.DeliveryAddress.FormattedAddress)
	}
}
