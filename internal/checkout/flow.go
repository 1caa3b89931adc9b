// Package checkout unifies the buy-now and cart checkout origins into a
// single order-submission flow with one shared form and one local order
// projection.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/example/storefront-sdk/internal/apiclient"
	"github.com/example/storefront-sdk/internal/cart"
	"github.com/example/storefront-sdk/internal/order"
	"github.com/example/storefront-sdk/internal/storage"
)

// State is the flow's position in its lifecycle.
type State string

const (
	StateLoading      State = "loading"
	StateAuthRequired State = "auth_required"
	StateEmptyCart    State = "empty_cart"
	StateReady        State = "ready"
	StateSubmitting   State = "submitting"
	StateComplete     State = "complete"
	StateFailed       State = "failed"
)

const buyNowKey = "buy_now"

// genericFailure is shown when the backend gave no message of its own.
const genericFailure = "order submission failed, please try again"

var ErrNotReady = errors.New("checkout is not ready to submit")

// ValidationError is a synchronous, field-local form failure. It never
// reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// BuyNowCarry is the ephemeral hand-off from a product page into
// checkout, bypassing the cart for a single product.
type BuyNowCarry struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	StoreID   string          `json:"store_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// StashBuyNow stores the carry-state for the next checkout entry.
func StashBuyNow(carry *storage.SessionStore, c BuyNowCarry) error {
	return carry.Put(buyNowKey, c)
}

// Backend is the submission side of checkout: single-product orders and
// whole-cart validation.
type Backend interface {
	SubmitBuyNow(ctx context.Context, req apiclient.BuyNowRequest) (string, error)
	cart.Submitter
}

// Form is the shared shipping/payment form both origins fill in.
type Form struct {
	FullName       string
	PhoneNumber    string
	Address        string
	WilayaID       int
	CommuneID      int
	PaymentMethod  string
	ShippingMethod string
}

// validateForm checks required fields. Location ids must be real
// selections; invalid ids fail here instead of being silently defaulted.
func validateForm(f Form) error {
	switch {
	case f.FullName == "":
		return &ValidationError{Field: "full_name", Message: "full name is required"}
	case f.PhoneNumber == "":
		return &ValidationError{Field: "phone_number", Message: "phone number is required"}
	case f.Address == "":
		return &ValidationError{Field: "address", Message: "address is required"}
	case f.WilayaID <= 0:
		return &ValidationError{Field: "wilaya_id", Message: "wilaya must be selected"}
	case f.CommuneID <= 0:
		return &ValidationError{Field: "commune_id", Message: "commune must be selected"}
	}
	return nil
}

// Flow is one checkout attempt. Both origins (buy-now carry and cart)
// converge on the same Submit path and the same order projection.
type Flow struct {
	mu           sync.Mutex
	state        State
	auth         cart.Authorizer
	cartStore    *cart.Store
	backend      Backend
	carry        *storage.SessionStore
	buyNow       *BuyNowCarry
	shippingCost decimal.Decimal
	failMessage  string
	result       *order.Order
}

func NewFlow(auth cart.Authorizer, cartStore *cart.Store, backend Backend, carry *storage.SessionStore, shippingCost decimal.Decimal) *Flow {
	return &Flow{
		state:        StateLoading,
		auth:         auth,
		cartStore:    cartStore,
		backend:      backend,
		carry:        carry,
		shippingCost: shippingCost,
	}
}

// Begin resolves the checkout origin and settles the entry state. A
// corrupt buy-now carry is dropped rather than blocking checkout.
func (f *Flow) Begin() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.auth == nil || !f.auth.IsAuthenticated() {
		f.state = StateAuthRequired
		return f.state
	}

	var carry BuyNowCarry
	ok, err := f.carry.Get(buyNowKey, &carry)
	if err != nil {
		log.Printf("[Checkout] Dropping unreadable buy-now carry: %v", err)
		f.carry.Delete(buyNowKey)
		ok = false
	}
	if ok {
		if carry.ProductID != "" && carry.Quantity > 0 {
			f.buyNow = &carry
			f.state = StateReady
			return f.state
		}
		// Decoded but unusable; a carry that fails to load is cleared
		// either way.
		log.Printf("[Checkout] Dropping invalid buy-now carry for product %q", carry.ProductID)
		f.carry.Delete(buyNowKey)
	}

	if f.cartStore.Len() == 0 {
		f.state = StateEmptyCart
		return f.state
	}
	f.state = StateReady
	return f.state
}

// State returns the current flow state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// IsBuyNow reports whether this checkout came from a buy-now hand-off.
func (f *Flow) IsBuyNow() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buyNow != nil
}

// FailureMessage is the user-facing message of the last failed submit.
func (f *Flow) FailureMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failMessage
}

// Order returns the confirmation projection once the flow completed.
func (f *Flow) Order() *order.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Subtotal derives the order summary amount for the current origin.
func (f *Flow) Subtotal() decimal.Decimal {
	f.mu.Lock()
	buyNow := f.buyNow
	f.mu.Unlock()

	if buyNow != nil {
		return buyNow.UnitPrice.Mul(decimal.NewFromInt(int64(buyNow.Quantity)))
	}
	return f.cartStore.Subtotal()
}

// Submit validates the form, sends the order through the origin's
// endpoint, and converges on one local projection. A failed submission
// moves to Failed but stays retryable: the next Submit call runs again
// with the same shipping details, and cart state is untouched.
func (f *Flow) Submit(ctx context.Context, form Form) (*order.Order, error) {
	f.mu.Lock()
	if f.state != StateReady && f.state != StateFailed {
		f.mu.Unlock()
		return nil, ErrNotReady
	}
	buyNow := f.buyNow
	f.state = StateSubmitting
	f.failMessage = ""
	f.mu.Unlock()

	if err := validateForm(form); err != nil {
		f.setState(StateReady)
		return nil, err
	}

	if buyNow == nil && f.cartStore.Len() == 0 {
		f.setState(StateEmptyCart)
		return nil, cart.ErrEmptyCart
	}

	var (
		orderIDs []string
		items    []order.Item
		err      error
	)
	if buyNow != nil {
		var id string
		id, err = f.backend.SubmitBuyNow(ctx, apiclient.BuyNowRequest{
			ProductID:   buyNow.ProductID,
			Quantity:    buyNow.Quantity,
			FullName:    form.FullName,
			PhoneNumber: form.PhoneNumber,
			Address:     form.Address,
			WilayaID:    form.WilayaID,
			CommuneID:   form.CommuneID,
		})
		if err == nil {
			orderIDs = []string{id}
			items = []order.Item{{
				ProductID: buyNow.ProductID,
				Name:      buyNow.Name,
				Quantity:  buyNow.Quantity,
				UnitPrice: buyNow.UnitPrice,
			}}
		}
	} else {
		shipping := cart.ShippingInfo{
			FullName:    form.FullName,
			PhoneNumber: form.PhoneNumber,
			Address:     form.Address,
			WilayaID:    form.WilayaID,
			CommuneID:   form.CommuneID,
		}
		lines := f.cartStore.Lines()
		orderIDs, err = f.cartStore.Validate(ctx, f.backend, shipping)
		if err == nil {
			items = order.ItemsFromLines(lines)
		}
	}
	if err != nil {
		f.fail(err)
		return nil, err
	}

	result, err := order.New(
		orderIDs,
		items,
		f.shippingCost,
		order.Customer{FullName: form.FullName, PhoneNumber: form.PhoneNumber},
		order.ShippingAddress{Address: form.Address, WilayaID: form.WilayaID, CommuneID: form.CommuneID},
		form.PaymentMethod,
		form.ShippingMethod,
	)
	if err != nil {
		f.fail(err)
		return nil, err
	}

	f.mu.Lock()
	f.state = StateComplete
	f.result = result
	f.mu.Unlock()

	// Submission is confirmed; drop the carry-state and, for the cart
	// origin, empty the cart.
	f.carry.Delete(buyNowKey)
	if buyNow == nil {
		f.cartStore.Clear()
	}

	log.Printf("[Checkout] Order %s confirmed (%d backend orders)", result.ID, len(result.SubOrders))
	return result, nil
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

// fail records a user-facing message, preferring the server's wording.
func (f *Flow) fail(err error) {
	message := genericFailure
	var submitErr *apiclient.SubmitError
	if errors.As(err, &submitErr) && submitErr.Message != "" {
		message = submitErr.Message
	}

	f.mu.Lock()
	f.state = StateFailed
	f.failMessage = message
	f.mu.Unlock()

	log.Printf("[Checkout] Submission failed: %v", err)
}

// Retry moves a failed flow back to Ready so the form can be resubmitted
// without re-entering shipping details.
func (f *Flow) Retry() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateFailed {
		return fmt.Errorf("cannot retry from state %s", f.state)
	}
	f.state = StateReady
	return nil
}
