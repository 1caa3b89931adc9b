package catalog

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://api.example.com"

// ============================================
// Store Type Mapping Tests
// ============================================

func TestParseStoreType(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected StoreType
	}{
		{"merchant maps to normal", "merchant", StoreTypeNormal},
		{"workshop maps to raw material", "workshop", StoreTypeRawMaterial},
		{"importer maps to import", "importer", StoreTypeImport},
		{"unknown kind", "wholesaler", StoreTypeUnknown},
		{"empty kind", "", StoreTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseStoreType(tt.raw))
		})
	}
}

// ============================================
// Image URL Resolution Tests
// ============================================

func TestResolveImageURL(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"absolute http passes through", "http://cdn.example.com/a.jpg", "http://cdn.example.com/a.jpg"},
		{"absolute https passes through", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"bare relative path", "products/a.jpg", testBaseURL + "/storage/products/a.jpg"},
		{"storage prefix stripped", "storage/products/a.jpg", testBaseURL + "/storage/products/a.jpg"},
		{"public prefix stripped", "public/products/a.jpg", testBaseURL + "/storage/products/a.jpg"},
		{"leading slash stripped", "/storage/products/a.jpg", testBaseURL + "/storage/products/a.jpg"},
		{"empty path stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveImageURL(testBaseURL, tt.path))
		})
	}
}

func TestResolveImageURL_TrailingSlashBase(t *testing.T) {
	got := ResolveImageURL("https://api.example.com/", "products/a.jpg")
	assert.Equal(t, "https://api.example.com/storage/products/a.jpg", got)
}

// ============================================
// Flexible Number Decoding Tests
// ============================================

func TestFlexNumber_Decoding(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected float64
	}{
		{"plain number", `{"price": 1200}`, 1200},
		{"decimal number", `{"price": 1200.5}`, 1200.5},
		{"quoted number", `{"price": "4500.00"}`, 4500},
		{"null falls back to zero", `{"price": null}`, 0},
		{"empty string falls back to zero", `{"price": ""}`, 0},
		{"garbage falls back to zero", `{"price": "not-a-number"}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw RawProduct
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &raw))
			assert.InDelta(t, tt.expected, float64(raw.Price), 0.0001)
		})
	}
}

// ============================================
// Product Normalization Tests
// ============================================

func rawProductFromJSON(t *testing.T, payload string) RawProduct {
	t.Helper()
	var raw RawProduct
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	return raw
}

func TestNormalizeProduct_InStockDerivedFromQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		inStock  bool
	}{
		{"positive quantity", `5`, true},
		{"zero quantity", `0`, false},
		{"quoted quantity", `"12"`, true},
		{"malformed quantity", `"oops"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := rawProductFromJSON(t, `{"id": 1, "name": "X", "quantity": `+tt.quantity+`}`)
			p := NormalizeProduct(raw, nil, testBaseURL)
			assert.Equal(t, tt.inStock, p.InStock)
			assert.Equal(t, p.Quantity > 0, p.InStock)
		})
	}
}

func TestNormalizeProduct_RatingIsMeanOfReviews(t *testing.T) {
	raw := rawProductFromJSON(t, `{
		"id": 1, "name": "X", "quantity": 1,
		"reviews": [
			{"id": 1, "rating": 5},
			{"id": 2, "rating": 3},
			{"id": 3, "rating": 4}
		]
	}`)

	p := NormalizeProduct(raw, nil, testBaseURL)

	assert.InDelta(t, 4.0, p.Rating, 0.0001)
	assert.Equal(t, 3, p.ReviewCount)
}

func TestNormalizeProduct_NoReviews(t *testing.T) {
	raw := rawProductFromJSON(t, `{"id": 1, "name": "X", "quantity": 1}`)

	p := NormalizeProduct(raw, nil, testBaseURL)

	assert.Zero(t, p.Rating)
	assert.Zero(t, p.ReviewCount)
}

func TestNormalizeProduct_OriginalPriceNeverBelowPrice(t *testing.T) {
	raw := rawProductFromJSON(t, `{"id": 1, "name": "X", "price": 1000, "original_price": 400, "quantity": 1}`)

	p := NormalizeProduct(raw, nil, testBaseURL)

	assert.True(t, p.OriginalPrice.GreaterThanOrEqual(p.Price))
	assert.True(t, p.OriginalPrice.Equal(decimal.NewFromInt(1000)))
}

func TestNormalizeProduct_MinimumQuantityFloor(t *testing.T) {
	raw := rawProductFromJSON(t, `{"id": 1, "name": "X", "quantity": 1, "minimum_quantity": 0}`)

	p := NormalizeProduct(raw, nil, testBaseURL)

	assert.Equal(t, 1, p.MinimumQuantity)
}

func TestNormalizeProduct_AttachesStoreMetadata(t *testing.T) {
	raw := rawProductFromJSON(t, `{"id": 7, "name": "X", "quantity": 1, "supplier_id": 2}`)
	lookup := func(id string) (Store, bool) {
		if id == "2" {
			return Store{ID: "2", Name: "Oran Textiles", Type: StoreTypeRawMaterial, Logo: "logo.png"}, true
		}
		return Store{}, false
	}

	p := NormalizeProduct(raw, lookup, testBaseURL)

	assert.Equal(t, "2", p.StoreID)
	assert.Equal(t, "Oran Textiles", p.StoreName)
	assert.Equal(t, StoreTypeRawMaterial, p.StoreType)
}

func TestNormalizeProduct_UnknownSupplier(t *testing.T) {
	raw := rawProductFromJSON(t, `{"id": 7, "name": "X", "quantity": 1, "supplier_id": 99}`)

	p := NormalizeProduct(raw, func(string) (Store, bool) { return Store{}, false }, testBaseURL)

	assert.Equal(t, StoreTypeUnknown, p.StoreType)
	assert.Empty(t, p.StoreName)
}

func TestNormalizeProduct_Pictures(t *testing.T) {
	raw := rawProductFromJSON(t, `{
		"id": 1, "name": "X", "quantity": 1,
		"pictures": [
			{"id": 1, "picture": "products/front.jpg"},
			{"id": 2, "picture": "https://cdn.example.com/back.jpg"}
		]
	}`)

	p := NormalizeProduct(raw, nil, testBaseURL)

	require.Len(t, p.Pictures, 2)
	assert.Equal(t, testBaseURL+"/storage/products/front.jpg", p.Pictures[0].URL)
	assert.Equal(t, "https://cdn.example.com/back.jpg", p.Pictures[1].URL)
}

// ============================================
// Supplier Normalization Tests
// ============================================

func TestNormalizeStore(t *testing.T) {
	var raw RawSupplier
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 3,
		"business_name": "Sahara Imports",
		"type": "importer",
		"picture": "suppliers/sahara.png",
		"verified": true,
		"location": "Constantine",
		"product_count": "4",
		"reviews": [{"id": 1, "author_name": "Amin", "rating": 4, "comment": "ok"}]
	}`), &raw))

	s := NormalizeStore(raw, testBaseURL)

	assert.Equal(t, "3", s.ID)
	assert.Equal(t, StoreTypeImport, s.Type)
	assert.Equal(t, testBaseURL+"/storage/suppliers/sahara.png", s.Logo)
	assert.True(t, s.Verified)
	assert.Equal(t, 4, s.ProductCount)
	assert.InDelta(t, 4.0, s.Rating, 0.0001)
	require.Len(t, s.Reviews, 1)
	assert.Equal(t, "Amin", s.Reviews[0].Author)
}

func TestNormalizeProducts_LookupByStoreID(t *testing.T) {
	stores := []Store{
		{ID: "1", Name: "Atlas Crafts", Type: StoreTypeNormal},
		{ID: "2", Name: "Oran Textiles", Type: StoreTypeRawMaterial},
	}
	raws := []RawProduct{
		rawProductFromJSON(t, `{"id": 1, "name": "A", "quantity": 1, "supplier_id": 1}`),
		rawProductFromJSON(t, `{"id": 2, "name": "B", "quantity": 1, "supplier_id": 2}`),
		rawProductFromJSON(t, `{"id": 3, "name": "C", "quantity": 1, "supplier_id": 9}`),
	}

	products := NormalizeProducts(raws, stores, testBaseURL)

	require.Len(t, products, 3)
	assert.Equal(t, "Atlas Crafts", products[0].StoreName)
	assert.Equal(t, StoreTypeRawMaterial, products[1].StoreType)
	assert.Equal(t, StoreTypeUnknown, products[2].StoreType)
}
