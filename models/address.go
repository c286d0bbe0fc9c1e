package models

// Address is a saved delivery address. Independent of cart/order lifecycle
// except that one address is selected at checkout and copied into the order.
type Address struct {
	ID               string      `json:"_id"`
	Mobile           int64       `json:"mobile"`
	FormattedAddress string      `json:"formattedAddress"`
	Location         GeoLocation `json:"location"`
}
