package upstream

import (
	"net/http"

	"tomato-client/models"
)

// CartClient talks to the cart routes of the restaurant service.
type CartClient struct {
	*Client
}

func NewCartClient(baseURL string, token TokenFunc) *CartClient {
	return &CartClient{New(baseURL, token)}
}

// All returns the authoritative cart state.
func (c *CartClient) All() (models.CartState, error) {
	var state models.CartState
	err := c.Get("/api/cart/all", &state)
	return state, err
}

// Add requests one unit of an item from a restaurant.
func (c *CartClient) Add(restaurantID, itemID string) error {
	body := map[string]string{"restaurantId": restaurantID, "itemId": itemID}
	return c.Send(http.MethodPost, "/api/cart/add", body, nil)
}

// Increment requests a +1 quantity delta for an item already in the cart.
func (c *CartClient) Increment(itemID string) error {
	return c.Send(http.MethodPut, "/api/cart/inc", map[string]string{"itemId": itemID}, nil)
}

// Decrement requests a -1 delta. The server decides whether a quantity-1 line
// is removed; the call shape is identical either way.
func (c *CartClient) Decrement(itemID string) error {
	return c.Send(http.MethodPut, "/api/cart/dec", map[string]string{"itemId": itemID}, nil)
}

// Clear empties the whole cart.
func (c *CartClient) Clear() error {
	return c.Delete("/api/cart/clear", nil)
}
