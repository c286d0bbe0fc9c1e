package upstream

import (
	"fmt"
	"io"
	"net/http"

	"tomato-client/models"
)

// ItemClient talks to the menu item routes of the restaurant service.
type ItemClient struct {
	*Client
}

func NewItemClient(baseURL string, token TokenFunc) *ItemClient {
	return &ItemClient{New(baseURL, token)}
}

// ForRestaurant lists a restaurant's menu.
func (i *ItemClient) ForRestaurant(restaurantID string) ([]models.Item, error) {
	var items []models.Item
	err := i.getList("/api/item/all/"+restaurantID, "items", &items)
	return items, err
}

// ItemUpload is the multipart menu item payload.
type ItemUpload struct {
	Name        string
	Description string
	Price       float64
	ImageName   string
	Image       io.Reader
}

// Create adds a menu item to the seller's restaurant.
func (i *ItemClient) Create(up ItemUpload) error {
	fields := map[string]string{
		"name":        up.Name,
		"description": up.Description,
		"price":       fmt.Sprintf("%v", up.Price),
	}
	return i.PostMultipart("/api/item/new", fields, up.ImageName, up.Image, nil)
}

// ToggleStatus flips an item's availability.
func (i *ItemClient) ToggleStatus(itemID string) error {
	return i.Send(http.MethodPut, "/api/item/status/"+itemID, nil, nil)
}

// Remove deletes a menu item.
func (i *ItemClient) Remove(itemID string) error {
	return i.Delete("/api/item/"+itemID, nil)
}
