package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func postJSON(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

// Address form validation happens at the gateway, before any backend call, so
// a handler with no clients behind it must still produce the right messages.
func TestAddressCreateValidation(t *testing.T) {
	h := &CustomerHandler{}

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"missing coordinates",
			`{"mobile": "9876543210", "formattedAddress": "12 MG Road"}`,
			"Please select a location on the map",
		},
		{
			"short mobile",
			`{"mobile": "12345", "formattedAddress": "12 MG Road", "latitude": 12.9, "longitude": 77.5}`,
			"Please enter a valid mobile number",
		},
		{
			"non-numeric mobile",
			`{"mobile": "98765abcde", "formattedAddress": "12 MG Road", "latitude": 12.9, "longitude": 77.5}`,
			"Please enter a valid mobile number",
		},
		{
			"missing address text",
			`{"mobile": "9876543210", "latitude": 12.9, "longitude": 77.5}`,
			"Please enter or auto-fill an address",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h.AddressCreate, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d; want 400", w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.want) {
				t.Errorf("body = %s; want message %q", w.Body.String(), tt.want)
			}
		})
	}
}

func TestCheckoutBeginRequiresJSONBody(t *testing.T) {
	h := &CustomerHandler{}
	w := postJSON(t, h.CheckoutBegin, `{invalid`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", w.Code)
	}
}
