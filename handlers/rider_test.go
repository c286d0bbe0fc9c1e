package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"tomato-client/models"
	"tomato-client/notify"
	"tomato-client/upstream"

	"github.com/gin-gonic/gin"
)

// newRiderOrderHandler wires a rider handler against a fake order backend and
// counts how many status updates actually reach it.
func newRiderOrderHandler(t *testing.T) (*RiderHandler, *int32) {
	t.Helper()
	calls := new(int32)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Write([]byte(`{"message": "Order status updated"}`))
	}))
	t.Cleanup(server.Close)

	token := upstream.TokenFunc(func() string { return "rider-token" })
	orders := upstream.NewOrderClient(server.URL, token, "internal")
	return NewRiderHandler(nil, orders, notify.NewHub(nil)), calls
}

func putRiderStatus(t *testing.T, h *RiderHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.UpdateOrderStatus(c)
	return w
}

func TestRiderUpdateOrderStatusAdvancesChain(t *testing.T) {
	h, calls := newRiderOrderHandler(t)
	h.pending = map[string]any{"orderId": "order-9"}

	w := putRiderStatus(t, h,
		`{"orderId": "order-9", "from": "ready_for_rider", "status": "picked_up"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Order picked up") {
		t.Errorf("body = %s; want the picked up message", w.Body.String())
	}
	if got := atomic.LoadInt32(calls); got != 1 {
		t.Errorf("backend calls = %d; want 1", got)
	}
	h.mu.Lock()
	pending := h.pending
	h.mu.Unlock()
	if pending != nil {
		t.Error("acting on the order must dismiss the pending banner")
	}
}

// A transition outside the rider's forward chain must be rejected before the
// backend is asked anything.
func TestRiderUpdateOrderStatusRejectsOffChainTransitions(t *testing.T) {
	h, calls := newRiderOrderHandler(t)

	tests := []struct {
		name string
		from models.OrderStatus
		to   models.OrderStatus
	}{
		{"skipping a step", models.StatusPickedUp, models.StatusDelivered},
		{"moving backwards", models.StatusOnTheWay, models.StatusPickedUp},
		{"seller's side of the chain", models.StatusPlaced, models.StatusAccepted},
		{"terminal state", models.StatusDelivered, models.StatusPickedUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := putRiderStatus(t, h,
				`{"orderId": "order-9", "from": "`+string(tt.from)+`", "status": "`+string(tt.to)+`"}`)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d; want 400", w.Code)
			}
		})
	}
	if got := atomic.LoadInt32(calls); got != 0 {
		t.Errorf("backend calls = %d; rejected transitions must not reach it", got)
	}
}

func TestRiderUpdateOrderStatusRequiresCurrentStatus(t *testing.T) {
	h, calls := newRiderOrderHandler(t)

	w := putRiderStatus(t, h, `{"orderId": "order-9", "status": "picked_up"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400 when the current status is missing", w.Code)
	}
	if got := atomic.LoadInt32(calls); got != 0 {
		t.Errorf("backend calls = %d; want 0", got)
	}
}
