package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// flexNumber accepts a JSON number, a quoted numeric string, or null.
// Malformed values decode to zero instead of failing the whole payload.
type flexNumber float64

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		*f = 0
		return nil
	}
	v, _ := d.Float64()
	*f = flexNumber(v)
	return nil
}

func (f flexNumber) Decimal() decimal.Decimal {
	return decimal.NewFromFloat(float64(f))
}

func (f flexNumber) Int() int {
	return int(f)
}

// ResolveImageURL turns a backend asset path into an absolute URL.
// Absolute URLs pass through untouched; relative paths lose any leading
// storage/ or public/ segment and are served from <base>/storage/.
func ResolveImageURL(baseURL, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http") {
		return path
	}
	p := strings.TrimPrefix(path, "/")
	p = strings.TrimPrefix(p, "storage/")
	p = strings.TrimPrefix(p, "public/")
	return strings.TrimSuffix(baseURL, "/") + "/storage/" + p
}

// meanRating averages review ratings, 0 when there are none.
func meanRating(reviews []RawReview) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reviews {
		sum += float64(r.Rating)
	}
	return sum / float64(len(reviews))
}

// SupplierLookup resolves a supplier id to its normalized store, when known.
type SupplierLookup func(supplierID string) (Store, bool)

// NormalizeProduct maps a raw backend product onto the canonical Product.
// It is pure: malformed fields degrade to zero values, never errors.
func NormalizeProduct(raw RawProduct, lookup SupplierLookup, baseURL string) Product {
	quantity := raw.Quantity.Int()
	minQty := raw.MinimumQuantity.Int()
	if minQty < 1 {
		minQty = 1
	}

	p := Product{
		ID:              raw.ID.String(),
		Name:            raw.Name,
		Price:           raw.Price.Decimal(),
		OriginalPrice:   raw.OriginalPrice.Decimal(),
		Image:           ResolveImageURL(baseURL, raw.Image),
		Rating:          meanRating(raw.Reviews),
		ReviewCount:     len(raw.Reviews),
		StoreID:         raw.SupplierID.String(),
		StoreType:       StoreTypeUnknown,
		Category:        raw.Category,
		Featured:        raw.Featured,
		InStock:         quantity > 0,
		Quantity:        quantity,
		MinimumQuantity: minQty,
		IsSaved:         raw.IsSaved,
	}

	if p.OriginalPrice.LessThan(p.Price) {
		p.OriginalPrice = p.Price
	}

	for _, pic := range raw.Pictures {
		p.Pictures = append(p.Pictures, Picture{
			ID:  pic.ID.String(),
			URL: ResolveImageURL(baseURL, pic.Picture),
		})
	}

	if lookup != nil {
		if store, ok := lookup(p.StoreID); ok {
			p.StoreType = store.Type
			p.StoreName = store.Name
			p.StoreLogo = store.Logo
		}
	}

	return p
}

// NormalizeStore maps a raw supplier onto the canonical Store.
func NormalizeStore(raw RawSupplier, baseURL string) Store {
	s := Store{
		ID:           raw.ID.String(),
		Name:         raw.BusinessName,
		Type:         ParseStoreType(raw.Kind),
		Logo:         ResolveImageURL(baseURL, raw.Picture),
		CoverImage:   ResolveImageURL(baseURL, raw.CoverPicture),
		Rating:       meanRating(raw.Reviews),
		ReviewCount:  len(raw.Reviews),
		Verified:     raw.Verified,
		Location:     raw.Location,
		ProductCount: raw.ProductCount.Int(),
	}
	for _, r := range raw.Reviews {
		s.Reviews = append(s.Reviews, Review{
			ID:      r.ID.String(),
			Author:  r.Author,
			Rating:  float64(r.Rating),
			Comment: r.Comment,
		})
	}
	return s
}

// NormalizeProducts normalizes a whole fetch result against a supplier list.
// Suppliers must already be normalized; this is the sequential dependency
// between the two fetches.
func NormalizeProducts(raws []RawProduct, stores []Store, baseURL string) []Product {
	byID := make(map[string]Store, len(stores))
	for _, s := range stores {
		byID[s.ID] = s
	}
	lookup := func(id string) (Store, bool) {
		s, ok := byID[id]
		return s, ok
	}

	products := make([]Product, 0, len(raws))
	for _, raw := range raws {
		products = append(products, NormalizeProduct(raw, lookup, baseURL))
	}
	return products
}
