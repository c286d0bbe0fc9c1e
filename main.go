package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"tomato-client/cart"
	"tomato-client/checkout"
	"tomato-client/config"
	"tomato-client/geo"
	"tomato-client/handlers"
	"tomato-client/middleware"
	"tomato-client/notify"
	"tomato-client/realtime"
	"tomato-client/routes"
	"tomato-client/session"
	"tomato-client/storage"
	"tomato-client/upstream"

	"github.com/gin-gonic/gin"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	cfg := config.Load()

	// Local store: the bearer token and the notification history
	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to open local store:", err)
	}

	hub := notify.NewHub(store)

	// Session owns the token; every upstream client reads it from here
	sess := session.NewStore(store, hub)
	token := upstream.TokenFunc(sess.Token)

	auth := upstream.NewAuthClient(cfg.AuthServiceURL, token)
	restaurants := upstream.NewRestaurantClient(cfg.RestaurantServiceURL, token)
	items := upstream.NewItemClient(cfg.RestaurantServiceURL, token)
	orders := upstream.NewOrderClient(cfg.RestaurantServiceURL, token, cfg.InternalKey)
	addresses := upstream.NewAddressClient(cfg.RestaurantServiceURL, token)
	riders := upstream.NewRiderClient(cfg.RiderServiceURL, token)
	payments := upstream.NewPaymentClient(cfg.UtilsServiceURL, token)

	sess.SetAuthClient(auth)
	sess.SetChannelFactory(func() *realtime.Channel {
		return realtime.New(cfg.RealtimeServiceURL, cfg.ReconnectAttempts, cfg.ReconnectDelay)
	})

	cartStore := cart.NewStore(upstream.NewCartClient(cfg.RestaurantServiceURL, token), hub)
	sess.OnLogin(cartStore.Fetch)
	sess.OnLogout(cartStore.Reset)

	flow := checkout.NewFlow(orders, payments, cartStore, hub)
	resolver := geo.NewResolver(cfg.GeocoderURL, cfg.DefaultLatitude, cfg.DefaultLongitude)

	riderHandler := handlers.NewRiderHandler(riders, orders, hub)
	riderHandler.Attach(sess)

	h := routes.Handlers{
		Auth:     handlers.NewAuthHandler(sess),
		Customer: handlers.NewCustomerHandler(restaurants, items, orders, addresses, cartStore, flow, resolver),
		Seller:   handlers.NewSellerHandler(restaurants, items, orders, hub),
		Rider:    riderHandler,
		Events:   handlers.NewEventsHandler(hub, store, sess),
	}

	// Resolve the stored token into a live session before serving
	sess.Bootstrap()

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()
	r.Use(middleware.CORS())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Tomato Client Gateway",
			"version": "1.0.0",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍅 Welcome to the Tomato Client Gateway",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "seller", "rider"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r, sess, h)

	// Start server
	log.Printf("🚀 Client gateway running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
