package upstream

import (
	"net/http"

	"tomato-client/models"
)

// PaymentClient talks to the payment routes of the utils service.
type PaymentClient struct {
	*Client
}

func NewPaymentClient(baseURL string, token TokenFunc) *PaymentClient {
	return &PaymentClient{New(baseURL, token)}
}

// CreateIntent obtains the Razorpay parameters for an order.
func (p *PaymentClient) CreateIntent(orderID string) (models.PaymentIntent, error) {
	var intent models.PaymentIntent
	err := p.Send(http.MethodPost, "/api/payment/create", map[string]string{"orderId": orderID}, &intent)
	return intent, err
}

// Verify relays the provider's callback fields plus our order id. Success
// means the backend accepted the signature; failure leaves the order unpaid
// for server-side reconciliation.
func (p *PaymentClient) Verify(result models.ProviderResult, orderID string) error {
	body := map[string]string{
		"razorpay_order_id":   result.RazorpayOrderID,
		"razorpay_payment_id": result.RazorpayPaymentID,
		"razorpay_signature":  result.RazorpaySignature,
		"orderId":             orderID,
	}
	return p.Send(http.MethodPost, "/api/payment/verify", body, nil)
}
