package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"tomato-client/cart"
	"tomato-client/checkout"
	"tomato-client/geo"
	"tomato-client/handlers"
	"tomato-client/notify"
	"tomato-client/realtime"
	"tomato-client/session"
	"tomato-client/storage"
	"tomato-client/upstream"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBackend fakes every upstream service behind one mux.
func newBackend(t *testing.T, role string) string {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token": "jwt-1", "user": {"_id": "u1", "name": "Asha", "role": "` + role + `"}}`))
	})
	mux.HandleFunc("/api/cart/all", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cart": [], "subtotal": 0}`))
	})
	mux.HandleFunc("/api/order/myorder", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"orders": [{"_id": "o1", "status": "placed"}]}`))
	})
	mux.HandleFunc("/api/restaurant/my", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "No restaurant found"}`))
	})
	mux.HandleFunc("/api/rider/myprofile", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server.URL
}

// newApp wires the full router the way main does, against the fake backend.
// role "" leaves the user pre-role-selection; role "-" skips login entirely.
func newApp(t *testing.T, role string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backendURL := newBackend(t, role)
	store, err := storage.Open(filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)

	hub := notify.NewHub(store)
	sess := session.NewStore(store, hub)
	token := upstream.TokenFunc(sess.Token)

	sess.SetAuthClient(upstream.NewAuthClient(backendURL, token))
	sess.SetChannelFactory(func() *realtime.Channel {
		return realtime.New("ws://127.0.0.1:1", 1, time.Millisecond)
	})

	restaurants := upstream.NewRestaurantClient(backendURL, token)
	items := upstream.NewItemClient(backendURL, token)
	orders := upstream.NewOrderClient(backendURL, token, "internal")
	addresses := upstream.NewAddressClient(backendURL, token)
	riders := upstream.NewRiderClient(backendURL, token)
	payments := upstream.NewPaymentClient(backendURL, token)
	cartStore := cart.NewStore(upstream.NewCartClient(backendURL, token), hub)
	flow := checkout.NewFlow(orders, payments, cartStore, hub)
	resolver := geo.NewResolver(backendURL, 28.6139, 77.2090)

	r := gin.New()
	SetupRoutes(r, sess, Handlers{
		Auth:     handlers.NewAuthHandler(sess),
		Customer: handlers.NewCustomerHandler(restaurants, items, orders, addresses, cartStore, flow, resolver),
		Seller:   handlers.NewSellerHandler(restaurants, items, orders, hub),
		Rider:    handlers.NewRiderHandler(riders, orders, hub),
		Events:   handlers.NewEventsHandler(hub, store, sess),
	})

	sess.Bootstrap()
	if role != "-" {
		_, err := sess.Login("auth-code")
		require.NoError(t, err)
	}
	return r
}

func do(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func redirectOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	redirect, _ := body["redirect"].(string)
	return redirect
}

func TestUnauthenticatedIsSentToLogin(t *testing.T) {
	r := newApp(t, "-")
	for _, path := range []string{"/api/home", "/api/orders", "/api/seller/dashboard", "/api/rider/home", "/api/notifications"} {
		w := do(r, http.MethodGet, path)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "/login", redirectOf(t, w), path)
	}
}

func TestNoRoleIsParkedOnRoleSelection(t *testing.T) {
	r := newApp(t, "")

	for _, path := range []string{"/api/home", "/api/cart", "/api/orders"} {
		w := do(r, http.MethodGet, path)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
		assert.Equal(t, "/select-role", redirectOf(t, w), path)
	}

	// The session probe and logout still work pre-role
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/auth/me").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/notifications").Code)
}

func TestCustomerCannotReachStaffConsoles(t *testing.T) {
	r := newApp(t, "customer")

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/api/seller/dashboard").Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/api/rider/home").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/orders").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/cart").Code)
}

func TestSellerCannotShop(t *testing.T) {
	r := newApp(t, "seller")

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/api/cart").Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/api/home").Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/api/rider/home").Code)

	// Not onboarded yet: the dashboard answers with the registration state
	w := do(r, http.MethodGet, "/api/seller/dashboard")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"onboarded":false`)
}

func TestRiderConsole(t *testing.T) {
	r := newApp(t, "rider")

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/api/cart").Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/api/seller/dashboard").Code)

	w := do(r, http.MethodGet, "/api/rider/home")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"onboarded":false`)
}

func TestPublicRoutes(t *testing.T) {
	r := newApp(t, "-")

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/state-machine").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/auth/me").Code)
}
