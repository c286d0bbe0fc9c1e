package models

// RiderProfile mirrors the rider service's profile document. The backend
// spells availability as "isAvailble"; the wire name is part of the contract.
type RiderProfile struct {
	ID                   string      `json:"_id"`
	UserID               string      `json:"userId,omitempty"`
	Picture              string      `json:"picture,omitempty"`
	PhoneNumber          string      `json:"phoneNumber,omitempty"`
	AadharNumber         string      `json:"aadharNumber,omitempty"`
	DrivingLicenseNumber string      `json:"drivingLicenseNumber,omitempty"`
	IsAvailable          bool        `json:"isAvailble"`
	IsVerified           bool        `json:"isVerified"`
	Location             GeoLocation `json:"location"`
	CreatedAt            string      `json:"createdAt,omitempty"`
}
