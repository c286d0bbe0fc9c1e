package routes

import (
	"tomato-client/handlers"
	"tomato-client/middleware"
	"tomato-client/models"
	"tomato-client/session"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything SetupRoutes wires.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Customer *handlers.CustomerHandler
	Seller   *handlers.SellerHandler
	Rider    *handlers.RiderHandler
	Events   *handlers.EventsHandler
}

func SetupRoutes(r *gin.Engine, s *session.Store, h Handlers) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/login", h.Auth.Login)
		// Session probe: always answers, the views branch on the result
		public.GET("/auth/me", h.Auth.Me)
		// Order lifecycle documentation
		public.GET("/state-machine", h.Events.StateMachineInfo)
	}

	// ── Authenticated routes (any role, including none yet) ────────
	authed := r.Group("/api")
	authed.Use(middleware.AuthRequired(s))
	{
		authed.POST("/auth/logout", h.Auth.Logout)
		authed.PUT("/auth/role", h.Auth.SelectRole)

		// Live toast feed and history
		authed.GET("/events", h.Events.Stream)
		authed.GET("/realtime/status", h.Events.RealtimeStatus)
		authed.GET("/notifications", h.Events.Notifications)
		authed.DELETE("/notifications", h.Events.ClearNotifications)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api")
	customer.Use(middleware.AuthRequired(s), middleware.RoleRequired(s, models.RoleCustomer))
	{
		customer.GET("/home", h.Customer.Home)
		customer.GET("/location", h.Customer.Location)
		customer.GET("/geocode", h.Customer.ReverseGeocode)
		customer.GET("/menu/:id", h.Customer.Menu)

		customer.GET("/cart", h.Customer.Cart)
		customer.POST("/cart/add", h.Customer.CartAdd)
		customer.PUT("/cart/inc", h.Customer.CartIncrement)
		customer.PUT("/cart/dec", h.Customer.CartDecrement)
		customer.DELETE("/cart/clear", h.Customer.CartClear)

		customer.GET("/orders", h.Customer.Orders)

		customer.GET("/address", h.Customer.Addresses)
		customer.POST("/address", h.Customer.AddressCreate)
		customer.DELETE("/address/:id", h.Customer.AddressDelete)

		customer.POST("/checkout", h.Customer.CheckoutBegin)
		customer.POST("/checkout/verify", h.Customer.CheckoutVerify)
		customer.POST("/checkout/cancel", h.Customer.CheckoutCancel)
		customer.POST("/checkout/gateway-failed", h.Customer.CheckoutGatewayFailed)
	}

	// ── Seller routes ──────────────────────────────────────────────
	seller := r.Group("/api/seller")
	seller.Use(middleware.AuthRequired(s), middleware.RoleRequired(s, models.RoleSeller))
	{
		seller.GET("/dashboard", h.Seller.Dashboard)
		seller.POST("/restaurant", h.Seller.Onboard)
		seller.PUT("/restaurant/status", h.Seller.ToggleStatus)

		seller.POST("/items", h.Seller.AddItem)
		seller.PUT("/items/:id/status", h.Seller.ToggleItem)
		seller.DELETE("/items/:id", h.Seller.DeleteItem)

		seller.PUT("/orders/:id", h.Seller.UpdateOrderStatus)
	}

	// ── Rider routes ───────────────────────────────────────────────
	rider := r.Group("/api/rider")
	rider.Use(middleware.AuthRequired(s), middleware.RoleRequired(s, models.RoleRider))
	{
		rider.GET("/home", h.Rider.Home)
		rider.POST("/profile", h.Rider.Onboard)
		rider.PATCH("/availability", h.Rider.ToggleAvailability)
		rider.PUT("/orders/status", h.Rider.UpdateOrderStatus)
	}
}
