// Package cart mirrors the server-held single-restaurant cart. Every
// mutation is relayed upstream and followed by a full refetch, never optimistic
// local math, so overlapping taps converge on server truth.
package cart

import (
	"log"
	"sync"

	"tomato-client/models"
	"tomato-client/notify"
	"tomato-client/upstream"
)

// Fixed checkout fees. The client never sees a server-computed total before
// payment, so the display math has to match what the server will charge.
const (
	DeliveryFee           = 49.0
	FreeDeliveryThreshold = 250.0
	PlatformFee           = 7.0
)

// Summary is the checkout price breakdown.
type Summary struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	PlatformFee float64 `json:"platformFee"`
	Total       float64 `json:"total"`
}

// Fees computes the display fees for a cart. Delivery is free from the
// threshold up; both fees are zero for an empty cart.
func Fees(subtotal float64, itemCount int) (deliveryFee, platformFee float64) {
	if itemCount == 0 {
		return 0, 0
	}
	if subtotal < FreeDeliveryThreshold {
		deliveryFee = DeliveryFee
	}
	return deliveryFee, PlatformFee
}

// Store holds the local cart mirror.
type Store struct {
	mu       sync.RWMutex
	client   *upstream.CartClient
	hub      *notify.Hub
	items    []models.CartItem
	subtotal float64
}

func NewStore(client *upstream.CartClient, hub *notify.Hub) *Store {
	return &Store{client: client, hub: hub}
}

// Fetch replaces local state wholesale with the server's cart. A failure
// leaves the previous state untouched and only logs: this is a background
// refresh, not a user action.
func (s *Store) Fetch() {
	state, err := s.client.All()
	if err != nil {
		log.Println("[cart] error fetching cart:", err)
		return
	}
	s.mu.Lock()
	s.items = state.Cart
	s.subtotal = state.Subtotal
	s.mu.Unlock()
}

// Add requests an item and refetches. User-initiated, so both outcomes toast.
func (s *Store) Add(restaurantID, itemID string) error {
	if err := s.client.Add(restaurantID, itemID); err != nil {
		s.hub.Error(upstream.ErrorMessage(err, "Error adding to cart"))
		return err
	}
	s.hub.Success("Added to cart")
	s.Fetch()
	return nil
}

// Increment requests +1 and refetches. Quantity taps come in bursts, so
// failures stay silent (log only); toasting each one would be noise.
func (s *Store) Increment(itemID string) error {
	if err := s.client.Increment(itemID); err != nil {
		log.Println("[cart] error incrementing:", err)
		return err
	}
	s.Fetch()
	return nil
}

// Decrement requests -1 and refetches. The server removes a quantity-1 line
// itself; the client only swaps the affordance (see models.CartItem.Removable).
func (s *Store) Decrement(itemID string) error {
	if err := s.client.Decrement(itemID); err != nil {
		log.Println("[cart] error decrementing:", err)
		return err
	}
	s.Fetch()
	return nil
}

// Clear empties the cart. The result is deterministic, so local state resets
// without a refetch.
func (s *Store) Clear() error {
	if err := s.client.Clear(); err != nil {
		log.Println("[cart] error clearing cart:", err)
		return err
	}
	s.Reset()
	return nil
}

// Reset drops local state without touching the server. Used by logout and
// after checkout completes.
func (s *Store) Reset() {
	s.mu.Lock()
	s.items = nil
	s.subtotal = 0
	s.mu.Unlock()
}

// Items returns a copy of the current lines.
func (s *Store) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// Subtotal is the server-computed subtotal, trusted as-is.
func (s *Store) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subtotal
}

// Count returns the number of cart lines.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Restaurant returns the cart's restaurant. All lines belong to one
// restaurant (server-enforced), so line 0 speaks for the cart.
func (s *Store) Restaurant() (models.CartRestaurant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.items) == 0 {
		return models.CartRestaurant{}, false
	}
	return s.items[0].Restaurant, true
}

// Summary computes the checkout price breakdown from the current mirror.
func (s *Store) Summary() Summary {
	s.mu.RLock()
	subtotal := s.subtotal
	count := len(s.items)
	s.mu.RUnlock()

	deliveryFee, platformFee := Fees(subtotal, count)
	return Summary{
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		PlatformFee: platformFee,
		Total:       subtotal + deliveryFee + platformFee,
	}
}
