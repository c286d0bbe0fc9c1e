package models

// PaymentIntent is the POST /api/payment/create response: everything the
// Razorpay widget needs to open.
type PaymentIntent struct {
	Key             string  `json:"key"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	RazorpayOrderID string  `json:"razorpayOrderId"`
}

// ProviderResult carries the fields Razorpay hands back on success. They are
// relayed verbatim to the verify endpoint together with our order id.
type ProviderResult struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}
