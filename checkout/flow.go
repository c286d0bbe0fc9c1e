// Package checkout sequences order creation, payment-intent creation, the
// provider widget and verification into one linear flow with per-step failure
// isolation. No step retries automatically; every failure returns the flow to
// idle and the user re-enters from the start.
package checkout

import (
	"errors"
	"sync"

	"tomato-client/cart"
	"tomato-client/models"
	"tomato-client/notify"
	"tomato-client/upstream"
)

type State string

const (
	StateIdle                  State = "idle"
	StateOrderCreating         State = "order_creating"
	StatePaymentIntentCreating State = "payment_intent_creating"
	StateProviderUIOpen        State = "provider_ui_open"
	StateVerifying             State = "verifying"
)

// ErrInProgress gates the initiating control: no two checkout attempts may
// run concurrently from the same view instance.
var ErrInProgress = errors.New("checkout already in progress")

type Flow struct {
	mu       sync.Mutex
	orders   *upstream.OrderClient
	payments *upstream.PaymentClient
	cart     *cart.Store
	hub      *notify.Hub

	state   State
	orderID string
}

func NewFlow(orders *upstream.OrderClient, payments *upstream.PaymentClient, cartStore *cart.Store, hub *notify.Hub) *Flow {
	return &Flow{orders: orders, payments: payments, cart: cartStore, hub: hub, state: StateIdle}
}

// State returns the current flow state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Processing reports whether a checkout attempt is underway.
func (f *Flow) Processing() bool {
	return f.State() != StateIdle
}

// Begin runs the first two steps, order creation and payment-intent
// creation, and hands back the provider parameters for the widget. On return
// the flow sits in ProviderUIOpen waiting for Complete or Cancel.
func (f *Flow) Begin(addressID string) (models.PaymentIntent, error) {
	if addressID == "" {
		f.hub.Error("Please select a delivery address")
		return models.PaymentIntent{}, errors.New("no delivery address selected")
	}
	if f.cart.Count() == 0 {
		f.hub.Error("Your cart is empty")
		return models.PaymentIntent{}, errors.New("cart is empty")
	}

	f.mu.Lock()
	if f.state != StateIdle {
		f.mu.Unlock()
		return models.PaymentIntent{}, ErrInProgress
	}
	f.state = StateOrderCreating
	f.mu.Unlock()

	orderID, err := f.orders.Create("razorpay", addressID)
	if err != nil {
		f.reset()
		f.hub.Error(upstream.ErrorMessage(err, "Order creation failed"))
		return models.PaymentIntent{}, err
	}

	f.mu.Lock()
	f.orderID = orderID
	f.state = StatePaymentIntentCreating
	f.mu.Unlock()

	// A failure from here on leaves the order created but unpaid. The
	// backend owns reconciliation of such orders; the client never retries.
	intent, err := f.payments.CreateIntent(orderID)
	if err != nil {
		f.reset()
		f.hub.Error(upstream.ErrorMessage(err, "Order creation failed"))
		return models.PaymentIntent{}, err
	}

	f.mu.Lock()
	f.state = StateProviderUIOpen
	f.mu.Unlock()
	return intent, nil
}

// GatewayFailed reports that the provider widget could not load. The flow
// aborts; the order stays unpaid.
func (f *Flow) GatewayFailed() {
	f.reset()
	f.hub.Error("Payment gateway failed to load")
}

// Cancel reports that the user dismissed the provider widget.
func (f *Flow) Cancel() {
	f.reset()
	f.hub.Error("Payment cancelled")
}

// Complete verifies the provider's callback. Success empties the cart and the
// caller navigates to the orders view; failure gets its own distinct toast
// and leaves the order unpaid/unverified for server-side reconciliation.
func (f *Flow) Complete(result models.ProviderResult) error {
	f.mu.Lock()
	if f.state != StateProviderUIOpen {
		f.mu.Unlock()
		return errors.New("no payment awaiting verification")
	}
	f.state = StateVerifying
	orderID := f.orderID
	f.mu.Unlock()

	if err := f.payments.Verify(result, orderID); err != nil {
		f.reset()
		f.hub.Error("Payment verification failed")
		return err
	}

	f.reset()
	f.hub.Success("Payment successful! Order placed.")
	if err := f.cart.Clear(); err != nil {
		// The server already owns the cart's fate after payment; local
		// state still resets so the UI does not show a ghost cart.
		f.cart.Reset()
	}
	return nil
}

func (f *Flow) reset() {
	f.mu.Lock()
	f.state = StateIdle
	f.orderID = ""
	f.mu.Unlock()
}
