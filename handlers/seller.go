package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"tomato-client/models"
	"tomato-client/notify"
	"tomato-client/statemachine"
	"tomato-client/upstream"

	"github.com/gin-gonic/gin"
)

// SellerHandler serves the restaurant dashboard: onboarding, the menu, and
// the order pipeline.
type SellerHandler struct {
	restaurants *upstream.RestaurantClient
	items       *upstream.ItemClient
	orders      *upstream.OrderClient
	hub         *notify.Hub
}

func NewSellerHandler(restaurants *upstream.RestaurantClient, items *upstream.ItemClient, orders *upstream.OrderClient, hub *notify.Hub) *SellerHandler {
	return &SellerHandler{restaurants: restaurants, items: items, orders: orders, hub: hub}
}

// Dashboard returns the seller's restaurant with its orders, menu and stats.
// A seller without a restaurant gets onboarded=false and the view shows the
// registration form instead.
func (h *SellerHandler) Dashboard(c *gin.Context) {
	restaurant, err := h.restaurants.My()
	if err != nil {
		if upstream.IsNotFound(err) {
			c.JSON(http.StatusOK, gin.H{"onboarded": false})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": upstream.ErrorMessage(err, "Error fetching restaurant")})
		return
	}

	orders, err := h.orders.ForRestaurant(restaurant.ID)
	if err != nil {
		orders = nil
	}
	items, err := h.items.ForRestaurant(restaurant.ID)
	if err != nil {
		items = nil
	}

	type orderView struct {
		models.Order
		StatusLabel string             `json:"statusLabel"`
		NextStatus  models.OrderStatus `json:"nextStatus,omitempty"`
	}
	views := make([]orderView, 0, len(orders))
	totalRevenue := 0.0
	active, completed := 0, 0
	for _, o := range orders {
		view := orderView{Order: o, StatusLabel: o.Status.Label()}
		if next, ok := statemachine.NextStatus(o.Status, statemachine.ActorSeller); ok {
			view.NextStatus = next
		}
		views = append(views, view)

		totalRevenue += o.TotalAmount
		switch {
		case o.Status == models.StatusDelivered:
			completed++
		case !o.Status.Terminal():
			active++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"onboarded":  true,
		"restaurant": restaurant,
		"orders":     views,
		"items":      items,
		"stats": gin.H{
			"totalRevenue":    totalRevenue,
			"activeOrders":    active,
			"completedOrders": completed,
		},
	})
}

// Onboard registers the seller's restaurant from the multipart form.
func (h *SellerHandler) Onboard(c *gin.Context) {
	name := c.PostForm("name")
	latitude, latErr := strconv.ParseFloat(c.PostForm("latitude"), 64)
	longitude, lngErr := strconv.ParseFloat(c.PostForm("longitude"), 64)
	file, header, fileErr := c.Request.FormFile("file")
	if name == "" || fileErr != nil || latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brand name, visual assets, and coordinates are mandatory."})
		return
	}
	defer file.Close()

	err := h.restaurants.Create(upstream.RestaurantUpload{
		Name:             name,
		Description:      c.PostForm("description"),
		Phone:            c.PostForm("phone"),
		Latitude:         latitude,
		Longitude:        longitude,
		FormattedAddress: c.PostForm("formattedAddress"),
		ImageName:        header.Filename,
		Image:            file,
	})
	if err != nil {
		message := upstream.ErrorMessage(err, "Something went wrong")
		h.hub.Error(message)
		c.JSON(http.StatusBadGateway, gin.H{"error": message})
		return
	}

	h.hub.Success("Establishment Registered Successfully")
	c.JSON(http.StatusCreated, gin.H{"message": "Establishment Registered Successfully"})
}

// ToggleStatus flips the restaurant open/closed. The toast names the state
// being entered, so the prior state is read first.
func (h *SellerHandler) ToggleStatus(c *gin.Context) {
	restaurant, err := h.restaurants.My()
	if err != nil {
		h.hub.Error("Error toggling status")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error toggling status"})
		return
	}
	if err := h.restaurants.ToggleStatus(); err != nil {
		h.hub.Error("Error toggling status")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error toggling status"})
		return
	}

	message := "Restaurant opened"
	if restaurant.IsOpen {
		message = "Restaurant closed"
	}
	h.hub.Success(message)
	c.JSON(http.StatusOK, gin.H{"message": message, "isOpen": !restaurant.IsOpen})
}

// AddItem adds a menu item from the multipart form.
func (h *SellerHandler) AddItem(c *gin.Context) {
	name := c.PostForm("name")
	price, priceErr := strconv.ParseFloat(c.PostForm("price"), 64)
	file, header, fileErr := c.Request.FormFile("file")
	if name == "" || priceErr != nil || fileErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item name, price and image are mandatory."})
		return
	}
	defer file.Close()

	err := h.items.Create(upstream.ItemUpload{
		Name:        name,
		Description: c.PostForm("description"),
		Price:       price,
		ImageName:   header.Filename,
		Image:       file,
	})
	if err != nil {
		message := upstream.ErrorMessage(err, "Error adding item")
		h.hub.Error(message)
		c.JSON(http.StatusBadGateway, gin.H{"error": message})
		return
	}

	h.hub.Success("Item added to menu")
	c.JSON(http.StatusCreated, gin.H{"message": "Item added to menu"})
}

// ToggleItem flips a menu item's availability.
func (h *SellerHandler) ToggleItem(c *gin.Context) {
	if err := h.items.ToggleStatus(c.Param("id")); err != nil {
		h.hub.Error("Error toggling item")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error toggling item"})
		return
	}
	h.hub.Success("Item status toggled")
	c.JSON(http.StatusOK, gin.H{"message": "Item status toggled"})
}

// DeleteItem removes a menu item.
func (h *SellerHandler) DeleteItem(c *gin.Context) {
	if err := h.items.Remove(c.Param("id")); err != nil {
		h.hub.Error("Error deleting item")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error deleting item"})
		return
	}
	h.hub.Success("Item deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

type statusUpdateRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	From   models.OrderStatus `json:"from" binding:"required"`
}

// UpdateOrderStatus advances one order along the seller's part of the chain.
// The dashboard sends the order's current status alongside the target, so a
// transition outside the forward chain is rejected before the backend sees it
// (the backend still has the final say).
func (h *SellerHandler) UpdateOrderStatus(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := statemachine.CanAdvance(req.From, req.Status, statemachine.ActorSeller); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.orders.UpdateStatus(c.Param("id"), req.Status); err != nil {
		message := upstream.ErrorMessage(err, "Error updating order")
		h.hub.Error(message)
		c.JSON(http.StatusBadGateway, gin.H{"error": message})
		return
	}

	message := "Order " + strings.ReplaceAll(string(req.Status), "_", " ")
	h.hub.Success(message)
	c.JSON(http.StatusOK, gin.H{"message": message})
}
