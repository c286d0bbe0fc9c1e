package models

import "time"

// GeoLocation is the GeoJSON point the restaurant service stores for
// restaurants and addresses. Coordinates are [longitude, latitude].
type GeoLocation struct {
	Type             string     `json:"type"`
	Coordinates      [2]float64 `json:"coordinates"`
	FormattedAddress string     `json:"formattedAddress,omitempty"`
}

type Restaurant struct {
	ID           string      `json:"_id"`
	Name         string      `json:"name"`
	Description  string      `json:"description,omitempty"`
	Image        string      `json:"image"`
	OwnerID      string      `json:"ownerId"`
	Phone        string      `json:"phone"`
	IsVerified   bool        `json:"isVerified"`
	AutoLocation GeoLocation `json:"autoLocation"`
	IsOpen       bool        `json:"isOpen"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// Item is a menu item as served by the item service.
type Item struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	IsAvailable bool    `json:"isAvailable"`
}
