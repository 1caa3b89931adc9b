package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront-sdk/internal/catalog"
	"github.com/example/storefront-sdk/internal/session"
)

type stubAuth struct {
	loggedIn bool
}

func (a stubAuth) IsAuthenticated() bool { return a.loggedIn }

// mockSubmitter records validate calls and returns canned results.
type mockSubmitter struct {
	Calls    []cartCall
	OrderIDs []string
	Err      error
}

type cartCall struct {
	Shipping ShippingInfo
	Lines    []Line
}

func (m *mockSubmitter) ValidateCart(ctx context.Context, shipping ShippingInfo, lines []Line) ([]string, error) {
	m.Calls = append(m.Calls, cartCall{Shipping: shipping, Lines: lines})
	if m.Err != nil {
		return nil, m.Err
	}
	return m.OrderIDs, nil
}

func product(id string, listPrice int64, stock int) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     "Product " + id,
		StoreID:  "s1",
		Price:    decimal.NewFromInt(listPrice),
		Quantity: stock,
		InStock:  stock > 0,
	}
}

func newTestStore() *Store {
	return NewStore(stubAuth{loggedIn: true})
}

// ============================================
// Add Item Tests
// ============================================

func TestStore_AddItem_Success(t *testing.T) {
	s := newTestStore()

	line, err := s.AddItem(product("p1", 100, 10), 2, nil)

	require.NoError(t, err)
	assert.NotEmpty(t, line.ID)
	assert.Equal(t, "p1", line.ProductID)
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 1, s.Len())
}

func TestStore_AddItem_Unauthenticated(t *testing.T) {
	s := NewStore(stubAuth{loggedIn: false})

	_, err := s.AddItem(product("p1", 100, 10), 1, nil)

	assert.ErrorIs(t, err, session.ErrAuthRequired)
	assert.Zero(t, s.Len())
}

func TestStore_AddItem_MergesSameProductAndOptions(t *testing.T) {
	s := newTestStore()
	opts := map[string]string{"color": "red"}

	first, err := s.AddItem(product("p1", 100, 10), 2, opts)
	require.NoError(t, err)
	merged, err := s.AddItem(product("p1", 100, 10), 3, map[string]string{"color": "red"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, 5, merged.Quantity)
	assert.Equal(t, 1, s.Len())
}

func TestStore_AddItem_DifferentOptionsStaySeparate(t *testing.T) {
	s := newTestStore()

	_, err := s.AddItem(product("p1", 100, 10), 1, map[string]string{"color": "red"})
	require.NoError(t, err)
	_, err = s.AddItem(product("p1", 100, 10), 1, map[string]string{"color": "blue"})
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
}

func TestStore_AddItem_ClampedToStock(t *testing.T) {
	s := newTestStore()

	line, err := s.AddItem(product("p1", 100, 3), 10, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, line.Quantity)
}

func TestStore_AddItem_ClampedToMax(t *testing.T) {
	s := newTestStore()

	line, err := s.AddItem(product("p1", 100, 500), 200, nil)

	require.NoError(t, err)
	assert.Equal(t, MaxLineQuantity, line.Quantity)
}

func TestStore_AddItem_OutOfStock(t *testing.T) {
	s := newTestStore()

	_, err := s.AddItem(product("p1", 100, 0), 1, nil)

	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Zero(t, s.Len())
}

func TestStore_AddItem_ZeroQuantity(t *testing.T) {
	s := newTestStore()

	_, err := s.AddItem(product("p1", 100, 5), 0, nil)

	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestStore_AddItemAtPrice_NegotiatedOverride(t *testing.T) {
	s := newTestStore()

	line, err := s.AddItemAtPrice(product("p1", 100, 5), 1, nil, decimal.NewFromInt(80))

	require.NoError(t, err)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(80)))
}

func TestStore_AddItem_MergeKeepsNegotiatedPrice(t *testing.T) {
	s := newTestStore()
	_, err := s.AddItemAtPrice(product("p1", 100, 10), 1, nil, decimal.NewFromInt(80))
	require.NoError(t, err)

	// Adding more units at list price must not undo the negotiation.
	merged, err := s.AddItem(product("p1", 100, 10), 2, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, merged.Quantity)
	assert.True(t, merged.UnitPrice.Equal(decimal.NewFromInt(80)))
	assert.True(t, s.Subtotal().Equal(decimal.NewFromInt(240)))
}

// ============================================
// Update Quantity Tests
// ============================================

func TestStore_UpdateQuantity_Success(t *testing.T) {
	s := newTestStore()
	line, err := s.AddItem(product("p1", 100, 10), 2, nil)
	require.NoError(t, err)

	updated, err := s.UpdateQuantity(line.ID, 7)

	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)
}

func TestStore_UpdateQuantity_BelowOneRejected(t *testing.T) {
	s := newTestStore()
	line, err := s.AddItem(product("p1", 100, 10), 2, nil)
	require.NoError(t, err)

	_, err = s.UpdateQuantity(line.ID, 0)

	assert.ErrorIs(t, err, ErrInvalidQuantity)
	// The line survives; removal is a separate operation.
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, s.Lines()[0].Quantity)
}

func TestStore_UpdateQuantity_ClampedToStock(t *testing.T) {
	s := newTestStore()
	line, err := s.AddItem(product("p1", 100, 4), 1, nil)
	require.NoError(t, err)

	updated, err := s.UpdateQuantity(line.ID, 40)

	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)
}

func TestStore_UpdateQuantity_UnknownLine(t *testing.T) {
	s := newTestStore()

	_, err := s.UpdateQuantity("missing", 2)

	assert.ErrorIs(t, err, ErrLineNotFound)
}

// ============================================
// Remove Line Tests
// ============================================

func TestStore_RemoveLine(t *testing.T) {
	s := newTestStore()
	line, err := s.AddItem(product("p1", 100, 10), 2, nil)
	require.NoError(t, err)

	require.NoError(t, s.RemoveLine(line.ID))

	assert.Zero(t, s.Len())
}

func TestStore_RemoveLine_Unknown(t *testing.T) {
	s := newTestStore()

	assert.ErrorIs(t, s.RemoveLine("missing"), ErrLineNotFound)
}

// ============================================
// Subtotal Tests
// ============================================

func TestStore_Subtotal(t *testing.T) {
	s := newTestStore()
	_, err := s.AddItem(product("a", 100, 10), 2, nil)
	require.NoError(t, err)
	_, err = s.AddItem(product("b", 50, 10), 1, nil)
	require.NoError(t, err)

	assert.True(t, s.Subtotal().Equal(decimal.NewFromInt(250)))
}

func TestStore_Subtotal_EmptyCart(t *testing.T) {
	s := newTestStore()

	assert.True(t, s.Subtotal().Equal(decimal.Zero))
}

func TestStore_Subtotal_TracksMutations(t *testing.T) {
	s := newTestStore()
	line, err := s.AddItem(product("a", 100, 10), 2, nil)
	require.NoError(t, err)

	_, err = s.UpdateQuantity(line.ID, 5)
	require.NoError(t, err)
	assert.True(t, s.Subtotal().Equal(decimal.NewFromInt(500)))

	require.NoError(t, s.RemoveLine(line.ID))
	assert.True(t, s.Subtotal().Equal(decimal.Zero))
}

// ============================================
// Validate Tests
// ============================================

func shipping() ShippingInfo {
	return ShippingInfo{
		FullName:    "Amine B",
		PhoneNumber: "0550000000",
		Address:     "12 Rue Didouche",
		WilayaID:    16,
		CommuneID:   1601,
	}
}

func TestStore_Validate_Success(t *testing.T) {
	s := newTestStore()
	_, err := s.AddItem(product("a", 100, 10), 2, nil)
	require.NoError(t, err)
	submitter := &mockSubmitter{OrderIDs: []string{"501", "502"}}

	ids, err := s.Validate(context.Background(), submitter, shipping())

	require.NoError(t, err)
	assert.Equal(t, []string{"501", "502"}, ids)
	require.Len(t, submitter.Calls, 1)
	assert.Equal(t, shipping(), submitter.Calls[0].Shipping)
	assert.Len(t, submitter.Calls[0].Lines, 1)
}

func TestStore_Validate_EmptyCart(t *testing.T) {
	s := newTestStore()
	submitter := &mockSubmitter{}

	_, err := s.Validate(context.Background(), submitter, shipping())

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, submitter.Calls)
}

func TestStore_Validate_FailureLeavesCartUntouched(t *testing.T) {
	s := newTestStore()
	_, err := s.AddItem(product("a", 100, 10), 2, nil)
	require.NoError(t, err)
	_, err = s.AddItem(product("b", 50, 10), 1, nil)
	require.NoError(t, err)
	before := s.Subtotal()
	submitter := &mockSubmitter{Err: errors.New("backend down")}

	_, err = s.Validate(context.Background(), submitter, shipping())

	require.Error(t, err)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Subtotal().Equal(before))
}
