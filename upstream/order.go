package upstream

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"tomato-client/models"
)

// OrderClient talks to the order routes of the restaurant service.
type OrderClient struct {
	*Client
	internalKey string
}

func NewOrderClient(baseURL string, token TokenFunc, internalKey string) *OrderClient {
	return &OrderClient{Client: New(baseURL, token), internalKey: internalKey}
}

// My returns the customer's orders, newest first.
func (o *OrderClient) My() ([]models.Order, error) {
	var orders []models.Order
	err := o.getList("/api/order/myorder", "orders", &orders)
	return orders, err
}

// ForRestaurant returns a restaurant's orders for the seller dashboard.
func (o *OrderClient) ForRestaurant(restaurantID string) ([]models.Order, error) {
	var orders []models.Order
	err := o.getList("/api/order/restaurant/"+restaurantID, "orders", &orders)
	return orders, err
}

// Create places a new order from the current cart. The services are not
// consistent about where the id lives in the response, so every known spot is
// checked; an empty id aborts checkout.
func (o *OrderClient) Create(paymentMethod, addressID string) (string, error) {
	body := map[string]string{"paymentMethod": paymentMethod, "addressId": addressID}
	var res struct {
		Order *struct {
			ID string `json:"_id"`
		} `json:"order"`
		OrderID string `json:"orderId"`
		ID      string `json:"_id"`
	}
	if err := o.Send(http.MethodPost, "/api/order/new", body, &res); err != nil {
		return "", err
	}
	switch {
	case res.Order != nil && res.Order.ID != "":
		return res.Order.ID, nil
	case res.OrderID != "":
		return res.OrderID, nil
	case res.ID != "":
		return res.ID, nil
	}
	return "", errors.New("order creation failed: no order id in response")
}

// UpdateStatus is the seller's status transition call.
func (o *OrderClient) UpdateStatus(orderID string, status models.OrderStatus) error {
	return o.Send(http.MethodPut, "/api/order/"+orderID, map[string]models.OrderStatus{"status": status}, nil)
}

// CurrentForRider returns the rider's active order, or nil when there is
// none. This is an internal route keyed by x-internal-key, not a bearer token.
func (o *OrderClient) CurrentForRider(riderID string) (*models.Order, error) {
	headers := map[string]string{"x-internal-key": o.internalKey}
	var raw json.RawMessage
	path := "/api/order/current/rider?riderId=" + url.QueryEscape(riderID)
	if err := o.GetWithHeaders(path, headers, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var order models.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatusRider is the rider's status transition call, also internal.
func (o *OrderClient) UpdateStatusRider(orderID string, status models.OrderStatus) error {
	headers := map[string]string{"x-internal-key": o.internalKey}
	body := map[string]any{"orderId": orderID, "status": status}
	return o.SendWithHeaders(http.MethodPut, "/api/order/update/status/rider", headers, body, nil)
}
