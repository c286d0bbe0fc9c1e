package upstream

import (
	"net/http"

	"tomato-client/models"
)

// AddressClient talks to the address routes of the restaurant service.
type AddressClient struct {
	*Client
}

func NewAddressClient(baseURL string, token TokenFunc) *AddressClient {
	return &AddressClient{New(baseURL, token)}
}

// All lists the user's saved addresses.
func (a *AddressClient) All() ([]models.Address, error) {
	var addresses []models.Address
	err := a.getList("/api/address/all", "addresses", &addresses)
	return addresses, err
}

// Create saves a new delivery address.
func (a *AddressClient) Create(mobile int64, formattedAddress string, latitude, longitude float64) error {
	body := map[string]any{
		"mobile":           mobile,
		"formattedAddress": formattedAddress,
		"latitude":         latitude,
		"longitude":        longitude,
	}
	return a.Send(http.MethodPost, "/api/address/new", body, nil)
}

// Remove deletes a saved address.
func (a *AddressClient) Remove(id string) error {
	return a.Delete("/api/address/"+id, nil)
}
