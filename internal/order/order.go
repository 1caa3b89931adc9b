package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/storefront-sdk/internal/cart"
)

// Status is the order lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrEmptyOrder     = errors.New("order must have at least one item")
	ErrInvalidStatus  = errors.New("invalid order status transition")
	ErrOrderShipped   = errors.New("cannot cancel shipped order")
	ErrOrderCancelled = errors.New("order is already cancelled")
	ErrOrderDelivered = errors.New("order is already delivered")
)

// validTransitions defines allowed state transitions
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {}, // terminal state
	StatusCancelled: {}, // terminal state
}

// Item is a price/quantity snapshot taken at submission time. Items never
// change once the order exists.
type Item struct {
	ProductID string            `json:"product_id"`
	Name      string            `json:"name"`
	Quantity  int               `json:"quantity"`
	UnitPrice decimal.Decimal   `json:"unit_price"`
	Options   map[string]string `json:"options,omitempty"`
}

// Total is the item's extended price.
func (i Item) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Customer identifies the buyer on an order.
type Customer struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

// ShippingAddress is the delivery destination.
type ShippingAddress struct {
	Address   string `json:"address"`
	WilayaID  int    `json:"wilaya_id"`
	CommuneID int    `json:"commune_id"`
}

// Order is the local confirmation projection of a submission the backend
// already accepted. ID is the primary (first) backend order id; SubOrders
// holds every id the submission produced, one per seller, primary included.
type Order struct {
	ID              string          `json:"id"`
	SubOrders       []string        `json:"sub_orders"`
	Items           []Item          `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	Total           decimal.Decimal `json:"total"`
	Customer        Customer        `json:"customer"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	ShippingMethod  string          `json:"shipping_method"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CanTransitionTo checks if the order can transition to the target status
func (o *Order) CanTransitionTo(target Status) bool {
	allowed, exists := validTransitions[o.Status]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}

// Transition moves the lifecycle forward, rejecting anything outside
// validTransitions with a descriptive error.
func (o *Order) Transition(target Status) error {
	if o.CanTransitionTo(target) {
		o.Status = target
		return nil
	}
	switch {
	case o.Status == StatusCancelled:
		return ErrOrderCancelled
	case o.Status == StatusDelivered:
		return ErrOrderDelivered
	case o.Status == StatusShipped && target == StatusCancelled:
		return ErrOrderShipped
	default:
		return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidStatus, o.Status, target)
	}
}

// ComputeTotal derives the order total from its inputs. Totals are never
// stored independently of the items that produced them.
func ComputeTotal(items []Item, shippingCost decimal.Decimal) (subtotal, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total())
	}
	return subtotal, subtotal.Add(shippingCost)
}

// ItemsFromLines snapshots cart lines into immutable order items.
func ItemsFromLines(lines []cart.Line) []Item {
	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		opts := make(map[string]string, len(line.Options))
		for k, v := range line.Options {
			opts[k] = v
		}
		items = append(items, Item{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Options:   opts,
		})
	}
	return items
}

// New builds the local projection for a confirmed submission. It performs
// no network calls and tolerates being handed server-confirmed ids; when
// orderIDs is empty a local uuid stands in so the confirmation view still
// has a stable reference.
func New(orderIDs []string, items []Item, shippingCost decimal.Decimal, customer Customer, addr ShippingAddress, paymentMethod, shippingMethod string) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	ids := make([]string, len(orderIDs))
	copy(ids, orderIDs)
	if len(ids) == 0 {
		ids = []string{uuid.New().String()}
	}

	subtotal, total := ComputeTotal(items, shippingCost)

	return &Order{
		ID:              ids[0],
		SubOrders:       ids,
		Items:           items,
		Subtotal:        subtotal,
		ShippingCost:    shippingCost,
		Total:           total,
		Customer:        customer,
		ShippingAddress: addr,
		PaymentMethod:   paymentMethod,
		ShippingMethod:  shippingMethod,
		Status:          StatusPending,
		CreatedAt:       time.Now(),
	}, nil
}
