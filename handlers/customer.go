package handlers

import (
	"net/http"
	"strconv"

	"tomato-client/cart"
	"tomato-client/checkout"
	"tomato-client/geo"
	"tomato-client/models"
	"tomato-client/upstream"

	"github.com/gin-gonic/gin"
)

// DefaultRadius is the restaurant discovery radius in meters.
const DefaultRadius = 100000

// CustomerHandler serves the browse/cart/checkout side of the app.
type CustomerHandler struct {
	restaurants *upstream.RestaurantClient
	items       *upstream.ItemClient
	orders      *upstream.OrderClient
	addresses   *upstream.AddressClient
	cart        *cart.Store
	flow        *checkout.Flow
	geo         *geo.Resolver
}

func NewCustomerHandler(
	restaurants *upstream.RestaurantClient,
	items *upstream.ItemClient,
	orders *upstream.OrderClient,
	addresses *upstream.AddressClient,
	cartStore *cart.Store,
	flow *checkout.Flow,
	resolver *geo.Resolver,
) *CustomerHandler {
	return &CustomerHandler{
		restaurants: restaurants,
		items:       items,
		orders:      orders,
		addresses:   addresses,
		cart:        cartStore,
		flow:        flow,
		geo:         resolver,
	}
}

// Home lists restaurants around a position. Missing coordinates fall back to
// the configured default city; discovery never blocks on geolocation.
func (h *CustomerHandler) Home(c *gin.Context) {
	lat, lng := h.coords(c)
	place := h.geo.Resolve(lat, lng)

	restaurants, err := h.restaurants.Nearby(lat, lng, DefaultRadius)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": upstream.ErrorMessage(err, "Error fetching restaurants")})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"location":    place,
		"restaurants": restaurants,
	})
}

// Location resolves coordinates to a display label for the navbar.
func (h *CustomerHandler) Location(c *gin.Context) {
	lat, lng := h.coords(c)
	c.JSON(http.StatusOK, h.geo.Resolve(lat, lng))
}

// Menu returns one restaurant with its menu, plus the cart quantity per item
// so the view can render +/- controls in place of the add button.
func (h *CustomerHandler) Menu(c *gin.Context) {
	id := c.Param("id")

	restaurant, err := h.restaurants.Get(id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": upstream.ErrorMessage(err, "Error fetching menu")})
		return
	}
	items, err := h.items.ForRestaurant(id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": upstream.ErrorMessage(err, "Error fetching menu")})
		return
	}

	quantities := make(map[string]int)
	for _, line := range h.cart.Items() {
		quantities[line.Item.ID] = line.Quantity
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant":     restaurant,
		"items":          items,
		"cartQuantities": quantities,
	})
}

// Cart returns the local mirror with the price breakdown.
func (h *CustomerHandler) Cart(c *gin.Context) {
	response := gin.H{
		"cart":    h.cart.Items(),
		"summary": h.cart.Summary(),
	}
	if restaurant, ok := h.cart.Restaurant(); ok {
		response["restaurant"] = restaurant
	}
	c.JSON(http.StatusOK, response)
}

type cartAddRequest struct {
	RestaurantID string `json:"restaurantId" binding:"required"`
	ItemID       string `json:"itemId" binding:"required"`
}

func (h *CustomerHandler) CartAdd(c *gin.Context) {
	var req cartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.cart.Add(req.RestaurantID, req.ItemID); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": upstream.ErrorMessage(err, "Error adding to cart")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": h.cart.Items(), "summary": h.cart.Summary()})
}

type cartLineRequest struct {
	ItemID string `json:"itemId" binding:"required"`
}

func (h *CustomerHandler) CartIncrement(c *gin.Context) {
	h.cartDelta(c, h.cart.Increment)
}

func (h *CustomerHandler) CartDecrement(c *gin.Context) {
	h.cartDelta(c, h.cart.Decrement)
}

// cartDelta handles both quantity directions. Failures still answer 200 with
// the unchanged mirror: quantity taps are fire-and-forget in the views.
func (h *CustomerHandler) cartDelta(c *gin.Context, op func(string) error) {
	var req cartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	op(req.ItemID)
	c.JSON(http.StatusOK, gin.H{"cart": h.cart.Items(), "summary": h.cart.Summary()})
}

func (h *CustomerHandler) CartClear(c *gin.Context) {
	if err := h.cart.Clear(); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": upstream.ErrorMessage(err, "Error clearing cart")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": h.cart.Items(), "summary": h.cart.Summary()})
}

// Orders returns the customer's order history with the display label per
// status.
func (h *CustomerHandler) Orders(c *gin.Context) {
	orders, err := h.orders.My()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": upstream.ErrorMessage(err, "Error fetching orders")})
		return
	}

	type orderView struct {
		models.Order
		StatusLabel string `json:"statusLabel"`
	}
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, orderView{Order: o, StatusLabel: o.Status.Label()})
	}
	c.JSON(http.StatusOK, gin.H{"orders": views})
}

// Addresses lists the saved delivery addresses.
func (h *CustomerHandler) Addresses(c *gin.Context) {
	addresses, err := h.addresses.All()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": upstream.ErrorMessage(err, "Error fetching addresses")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

type addressCreateRequest struct {
	Mobile           string   `json:"mobile"`
	FormattedAddress string   `json:"formattedAddress"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
}

// AddressCreate validates the form the way the address page does, then relays.
func (h *CustomerHandler) AddressCreate(c *gin.Context) {
	var req addressCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a location on the map"})
		return
	}
	mobile, err := strconv.ParseInt(req.Mobile, 10, 64)
	if err != nil || len(req.Mobile) < 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid mobile number"})
		return
	}
	if req.FormattedAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter or auto-fill an address"})
		return
	}

	if err := h.addresses.Create(mobile, req.FormattedAddress, *req.Latitude, *req.Longitude); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": upstream.ErrorMessage(err, "Error adding address")})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Address added!"})
}

func (h *CustomerHandler) AddressDelete(c *gin.Context) {
	if err := h.addresses.Remove(c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error deleting address"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address removed"})
}

// ReverseGeocode backs the address form's map picker: coordinates in, the
// geocoder's display name out.
func (h *CustomerHandler) ReverseGeocode(c *gin.Context) {
	lat, lng := h.coords(c)
	place := h.geo.Resolve(lat, lng)
	c.JSON(http.StatusOK, gin.H{"formattedAddress": place.Display, "city": place.City})
}

type checkoutRequest struct {
	AddressID string `json:"addressId"`
}

// CheckoutBegin creates the order and the payment intent, and returns the
// provider parameters for the widget.
func (h *CustomerHandler) CheckoutBegin(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	intent, err := h.flow.Begin(req.AddressID)
	if err != nil {
		status := http.StatusBadRequest
		if err == checkout.ErrInProgress {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": intent, "state": h.flow.State()})
}

// CheckoutVerify relays the provider callback for signature verification.
func (h *CustomerHandler) CheckoutVerify(c *gin.Context) {
	var result models.ProviderResult
	if err := c.ShouldBindJSON(&result); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.flow.Complete(result); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment verification failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment successful! Order placed.", "redirect": "/orders"})
}

// CheckoutCancel reports widget dismissal.
func (h *CustomerHandler) CheckoutCancel(c *gin.Context) {
	h.flow.Cancel()
	c.JSON(http.StatusOK, gin.H{"message": "Payment cancelled"})
}

// CheckoutGatewayFailed reports that the provider widget never loaded.
func (h *CustomerHandler) CheckoutGatewayFailed(c *gin.Context) {
	h.flow.GatewayFailed()
	c.JSON(http.StatusOK, gin.H{"message": "Payment gateway failed to load"})
}

// coords reads ?latitude=&longitude=, falling back to the default city.
func (h *CustomerHandler) coords(c *gin.Context) (float64, float64) {
	defLat, defLng := h.geo.Default()
	lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		lat = defLat
	}
	lng, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		lng = defLng
	}
	return lat, lng
}
