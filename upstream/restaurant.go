package upstream

import (
	"fmt"
	"io"
	"net/http"

	"tomato-client/models"
)

// RestaurantClient talks to the restaurant routes of the restaurant service.
type RestaurantClient struct {
	*Client
}

func NewRestaurantClient(baseURL string, token TokenFunc) *RestaurantClient {
	return &RestaurantClient{New(baseURL, token)}
}

// Nearby lists restaurants within a radius (meters) of the given point.
func (r *RestaurantClient) Nearby(latitude, longitude float64, radius int) ([]models.Restaurant, error) {
	path := fmt.Sprintf("/api/restaurant/all?latitude=%v&longitude=%v&radius=%d", latitude, longitude, radius)
	var restaurants []models.Restaurant
	err := r.getList(path, "restaurants", &restaurants)
	return restaurants, err
}

// Get fetches one restaurant by id.
func (r *RestaurantClient) Get(id string) (models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.Client.Get("/api/restaurant/"+id, &restaurant)
	return restaurant, err
}

// My fetches the restaurant owned by the authenticated seller. A 404 means
// the seller has not onboarded yet.
func (r *RestaurantClient) My() (models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.Client.Get("/api/restaurant/my", &restaurant)
	return restaurant, err
}

// RestaurantUpload is the multipart onboarding payload. Field names are the
// server's exact form contract.
type RestaurantUpload struct {
	Name             string
	Description      string
	Phone            string
	Latitude         float64
	Longitude        float64
	FormattedAddress string
	ImageName        string
	Image            io.Reader
}

// Create registers a new restaurant for the seller.
func (r *RestaurantClient) Create(up RestaurantUpload) error {
	fields := map[string]string{
		"name":             up.Name,
		"description":      up.Description,
		"phone":            up.Phone,
		"latitude":         fmt.Sprintf("%v", up.Latitude),
		"longitude":        fmt.Sprintf("%v", up.Longitude),
		"formattedAddress": up.FormattedAddress,
	}
	return r.PostMultipart("/api/restaurant/new", fields, up.ImageName, up.Image, nil)
}

// ToggleStatus flips the restaurant between open and closed.
func (r *RestaurantClient) ToggleStatus() error {
	return r.Send(http.MethodPut, "/api/restaurant/status", nil, nil)
}
