package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"tomato-client/models"
	"tomato-client/notify"
	"tomato-client/realtime"
	"tomato-client/session"
	"tomato-client/statemachine"
	"tomato-client/upstream"

	"github.com/gin-gonic/gin"
)

// RiderHandler serves the rider console: onboarding, availability, the active
// delivery, and the banner for newly available orders.
type RiderHandler struct {
	riders *upstream.RiderClient
	orders *upstream.OrderClient
	hub    *notify.Hub

	mu      sync.Mutex
	pending map[string]any // last order:available payload, shown until acted on
}

func NewRiderHandler(riders *upstream.RiderClient, orders *upstream.OrderClient, hub *notify.Hub) *RiderHandler {
	return &RiderHandler{riders: riders, orders: orders, hub: hub}
}

// Attach subscribes the pending-order banner to the session's realtime
// channel. The channel is rebuilt on every login, so the subscription is
// re-established through the login hook rather than held once.
func (h *RiderHandler) Attach(s *session.Store) {
	s.OnLogin(func() {
		channel := s.Channel()
		if channel == nil {
			return
		}
		channel.On(realtime.EventOrderAvailable, func(payload map[string]any) {
			h.mu.Lock()
			h.pending = payload
			h.mu.Unlock()
		})
	})
	s.OnLogout(func() {
		h.mu.Lock()
		h.pending = nil
		h.mu.Unlock()
	})
}

// Home returns the rider's console state. No profile means the onboarding
// form; otherwise the availability switch, the active order (with the next
// transition to offer) and any pending order banner.
func (h *RiderHandler) Home(c *gin.Context) {
	profile, err := h.riders.MyProfile()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": upstream.ErrorMessage(err, "Error fetching profile")})
		return
	}
	if profile == nil {
		c.JSON(http.StatusOK, gin.H{"onboarded": false})
		return
	}

	response := gin.H{"onboarded": true, "profile": profile}

	order, err := h.orders.CurrentForRider(profile.ID)
	if err == nil && order != nil {
		view := gin.H{
			"order":       order,
			"statusLabel": order.Status.Label(),
		}
		if next, ok := statemachine.NextStatus(order.Status, statemachine.ActorRider); ok {
			view["nextStatus"] = next
		}
		response["activeOrder"] = view
	}

	h.mu.Lock()
	if h.pending != nil {
		response["pendingOrder"] = h.pending
	}
	h.mu.Unlock()

	c.JSON(http.StatusOK, response)
}

// Onboard registers the rider's profile from the multipart form.
func (h *RiderHandler) Onboard(c *gin.Context) {
	phone := c.PostForm("phoneNumber")
	aadhar := c.PostForm("aadharNumber")
	license := c.PostForm("drivingLicenseNumber")
	latitude, latErr := strconv.ParseFloat(c.PostForm("latitude"), 64)
	longitude, lngErr := strconv.ParseFloat(c.PostForm("longitude"), 64)
	file, header, fileErr := c.Request.FormFile("file")
	if phone == "" || aadhar == "" || license == "" || fileErr != nil || latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Credentials, visual identification, and coordinates are mandatory."})
		return
	}
	defer file.Close()

	err := h.riders.Create(upstream.RiderUpload{
		PhoneNumber:          phone,
		AadharNumber:         aadhar,
		DrivingLicenseNumber: license,
		Latitude:             latitude,
		Longitude:            longitude,
		ImageName:            header.Filename,
		Image:                file,
	})
	if err != nil {
		message := upstream.ErrorMessage(err, "Tactical Error: Deployment Failed")
		h.hub.Error(message)
		c.JSON(http.StatusBadGateway, gin.H{"error": message})
		return
	}

	h.hub.Success("Rider Protocol Initialized Successfully")
	c.JSON(http.StatusCreated, gin.H{"message": "Rider Protocol Initialized Successfully"})
}

type toggleRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ToggleAvailability flips the rider online/offline at the given position.
// The direction comes from the current profile, same as the console switch.
func (h *RiderHandler) ToggleAvailability(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.riders.MyProfile()
	if err != nil || profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rider profile not found"})
		return
	}

	res, err := h.riders.ToggleAvailability(!profile.IsAvailable, req.Latitude, req.Longitude)
	if err != nil {
		message := upstream.ErrorMessage(err, "Error toggling availability")
		h.hub.Error(message)
		c.JSON(http.StatusBadGateway, gin.H{"error": message})
		return
	}

	h.hub.Success(res.Message)
	c.JSON(http.StatusOK, gin.H{"message": res.Message, "isAvailble": !profile.IsAvailable})
}

type riderStatusRequest struct {
	OrderID string             `json:"orderId" binding:"required"`
	Status  models.OrderStatus `json:"status" binding:"required"`
	From    models.OrderStatus `json:"from" binding:"required"`
}

// UpdateOrderStatus advances the active delivery along the rider's part of
// the chain. The console sends the active order's current status with the
// target; anything outside the forward chain fails fast with a 400. Acting on
// the order also dismisses the pending banner.
func (h *RiderHandler) UpdateOrderStatus(c *gin.Context) {
	var req riderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := statemachine.CanAdvance(req.From, req.Status, statemachine.ActorRider); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.orders.UpdateStatusRider(req.OrderID, req.Status); err != nil {
		message := upstream.ErrorMessage(err, "Error updating status")
		h.hub.Error(message)
		c.JSON(http.StatusBadGateway, gin.H{"error": message})
		return
	}

	h.mu.Lock()
	h.pending = nil
	h.mu.Unlock()

	message := "Order " + strings.ReplaceAll(string(req.Status), "_", " ")
	h.hub.Success(message)
	c.JSON(http.StatusOK, gin.H{"message": message})
}
