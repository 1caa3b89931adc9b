package cart

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/storefront-sdk/internal/catalog"
	"github.com/example/storefront-sdk/internal/session"
)

// MaxLineQuantity caps any single cart line.
const MaxLineQuantity = 99

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrLineNotFound    = errors.New("cart line not found")
	ErrEmptyCart       = errors.New("cart is empty")
)

// Line is one cart entry. UnitPrice may be a negotiated price that
// overrides the product's list price.
type Line struct {
	ID        string            `json:"id"`
	ProductID string            `json:"product_id"`
	Name      string            `json:"name"`
	StoreID   string            `json:"store_id"`
	Quantity  int               `json:"quantity"`
	UnitPrice decimal.Decimal   `json:"unit_price"`
	Stock     int               `json:"stock"`
	Options   map[string]string `json:"options,omitempty"`
}

// Total is the line's extended price.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Authorizer reports whether the current viewer is logged in.
type Authorizer interface {
	IsAuthenticated() bool
}

// Submitter sends the cart to the backend for validation. One cart may
// decompose into several backend orders, one per distinct seller.
type Submitter interface {
	ValidateCart(ctx context.Context, shipping ShippingInfo, lines []Line) ([]string, error)
}

// ShippingInfo is the customer/destination block attached to a submission.
type ShippingInfo struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	WilayaID    int    `json:"wilaya_id"`
	CommuneID   int    `json:"commune_id"`
}

// Store holds cart state. All mutation goes through its methods so derived
// values stay consistent with the lines; it is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	auth  Authorizer
	lines []Line
}

func NewStore(auth Authorizer) *Store {
	return &Store{auth: auth}
}

// clampQuantity bounds a requested quantity to [1, min(99, stock)].
func clampQuantity(quantity, stock int) (int, error) {
	limit := MaxLineQuantity
	if stock < limit {
		limit = stock
	}
	if limit < 1 {
		return 0, ErrOutOfStock
	}
	if quantity < 1 {
		return 0, ErrInvalidQuantity
	}
	if quantity > limit {
		quantity = limit
	}
	return quantity, nil
}

// optionsKey builds a canonical fingerprint so lines merge only when both
// product and options match exactly.
func optionsKey(options map[string]string) string {
	if len(options) == 0 {
		return ""
	}
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(options[k])
		b.WriteByte(';')
	}
	return b.String()
}

// AddItem inserts the product at its list price, merging with an existing
// line when product and options match. Unauthenticated viewers are refused.
func (s *Store) AddItem(p catalog.Product, quantity int, options map[string]string) (Line, error) {
	return s.AddItemAtPrice(p, quantity, options, p.Price)
}

// AddItemAtPrice is AddItem with a negotiated unit price override. When
// the add merges into an existing line, that line's unit price stands:
// a negotiation agreed before cart entry is not undone by adding more
// units at list price.
func (s *Store) AddItemAtPrice(p catalog.Product, quantity int, options map[string]string, unitPrice decimal.Decimal) (Line, error) {
	if s.auth == nil || !s.auth.IsAuthenticated() {
		return Line{}, session.ErrAuthRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := optionsKey(options)
	for i, line := range s.lines {
		if line.ProductID == p.ID && optionsKey(line.Options) == key {
			merged, err := clampQuantity(line.Quantity+quantity, line.Stock)
			if err != nil {
				return Line{}, err
			}
			s.lines[i].Quantity = merged
			return s.lines[i], nil
		}
	}

	quantity, err := clampQuantity(quantity, p.Quantity)
	if err != nil {
		return Line{}, err
	}

	line := Line{
		ID:        uuid.New().String(),
		ProductID: p.ID,
		Name:      p.Name,
		StoreID:   p.StoreID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Stock:     p.Quantity,
		Options:   options,
	}
	s.lines = append(s.lines, line)
	return line, nil
}

// UpdateQuantity sets a line's quantity within the usual bounds. Going
// below 1 is rejected; removal is only RemoveLine.
func (s *Store) UpdateQuantity(lineID string, quantity int) (Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.lines {
		if line.ID != lineID {
			continue
		}
		clamped, err := clampQuantity(quantity, line.Stock)
		if err != nil {
			return Line{}, err
		}
		s.lines[i].Quantity = clamped
		return s.lines[i], nil
	}
	return Line{}, ErrLineNotFound
}

// RemoveLine drops a line from the cart.
func (s *Store) RemoveLine(lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.lines {
		if line.ID == lineID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// Lines returns a snapshot of the current cart contents.
func (s *Store) Lines() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len reports the number of lines.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// Subtotal recomputes the cart total from its lines on every call.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Total())
	}
	return total
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Validate submits the cart plus shipping info through the submitter and
// returns the backend order ids, first id being the primary. The cart is
// left untouched either way so a failed submission can simply be retried.
func (s *Store) Validate(ctx context.Context, submitter Submitter, shipping ShippingInfo) ([]string, error) {
	lines := s.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	ids, err := submitter.ValidateCart(ctx, shipping, lines)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, errors.New("backend returned no order ids")
	}
	return ids, nil
}
