package models

// CartProduct is the populated menu item inside a cart line.
type CartProduct struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
	IsAvailable bool    `json:"isAvailable"`
}

// CartRestaurant is the populated restaurant reference inside a cart line.
type CartRestaurant struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// CartItem mirrors one line of the server-held cart. The backend serializes
// quantity as "quauntity"; the wire name is part of the contract.
type CartItem struct {
	ID         string         `json:"_id"`
	Item       CartProduct    `json:"itemId"`
	Restaurant CartRestaurant `json:"restaurantId"`
	Quantity   int            `json:"quauntity"`
}

// Removable reports whether the next decrement would remove the line. This is
// an affordance only: the decrement call itself is identical, the server
// decides the actual removal.
func (ci CartItem) Removable() bool {
	return ci.Quantity <= 1
}

// CartState is the GET /api/cart/all response body.
type CartState struct {
	Cart     []CartItem `json:"cart"`
	Subtotal float64    `json:"subtotal"`
}
