package upstream

import (
	"fmt"
	"io"
	"net/http"

	"tomato-client/models"
)

// RiderClient talks to the rider service.
type RiderClient struct {
	*Client
}

func NewRiderClient(baseURL string, token TokenFunc) *RiderClient {
	return &RiderClient{New(baseURL, token)}
}

// MyProfile returns the rider's profile, or nil when the rider has not
// onboarded yet (404 or empty body).
func (r *RiderClient) MyProfile() (*models.RiderProfile, error) {
	var profile models.RiderProfile
	err := r.Get("/api/rider/myprofile", &profile)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if profile.ID == "" {
		return nil, nil
	}
	return &profile, nil
}

// RiderUpload is the multipart onboarding payload. Field names are the
// server's exact form contract.
type RiderUpload struct {
	PhoneNumber          string
	AadharNumber         string
	DrivingLicenseNumber string
	Latitude             float64
	Longitude            float64
	ImageName            string
	Image                io.Reader
}

// Create onboards a new rider.
func (r *RiderClient) Create(up RiderUpload) error {
	fields := map[string]string{
		"phoneNumber":          up.PhoneNumber,
		"aadharNumber":         up.AadharNumber,
		"drivingLicenseNumber": up.DrivingLicenseNumber,
		"latitude":             fmt.Sprintf("%v", up.Latitude),
		"longitude":            fmt.Sprintf("%v", up.Longitude),
	}
	return r.PostMultipart("/api/rider/new", fields, up.ImageName, up.Image, nil)
}

// ToggleResult carries the backend's confirmation message for the toast.
type ToggleResult struct {
	Message string `json:"message"`
}

// ToggleAvailability flips the rider online/offline at the given position.
// The availability field keeps the backend's "isAvailble" spelling.
func (r *RiderClient) ToggleAvailability(available bool, latitude, longitude float64) (ToggleResult, error) {
	body := map[string]any{
		"isAvailble": available,
		"latitude":   latitude,
		"longitude":  longitude,
	}
	var res ToggleResult
	if err := r.Send(http.MethodPatch, "/api/rider/.toggle", body, &res); err != nil {
		return res, err
	}
	if res.Message == "" {
		res.Message = fmt.Sprintf("Availability set to %v", available)
	}
	return res, nil
}
