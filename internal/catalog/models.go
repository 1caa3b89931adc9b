package catalog

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// StoreType classifies a supplier storefront.
type StoreType string

const (
	StoreTypeNormal      StoreType = "normal"
	StoreTypeRawMaterial StoreType = "raw_material"
	StoreTypeImport      StoreType = "import"
	StoreTypeUnknown     StoreType = "unknown"
)

// ParseStoreType maps the backend's supplier kind strings onto StoreType.
func ParseStoreType(raw string) StoreType {
	switch raw {
	case "merchant":
		return StoreTypeNormal
	case "workshop":
		return StoreTypeRawMaterial
	case "importer":
		return StoreTypeImport
	default:
		return StoreTypeUnknown
	}
}

// Picture is a single gallery image attached to a product.
type Picture struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Product is the canonical in-memory product shape. Only the normalizer
// constructs these; nothing else reads raw backend fields.
type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	Image           string          `json:"image"`
	Pictures        []Picture       `json:"pictures"`
	Rating          float64         `json:"rating"`
	ReviewCount     int             `json:"review_count"`
	StoreID         string          `json:"store_id"`
	StoreType       StoreType       `json:"store_type"`
	StoreName       string          `json:"store_name"`
	StoreLogo       string          `json:"store_logo"`
	Category        string          `json:"category"`
	Featured        bool            `json:"featured"`
	InStock         bool            `json:"in_stock"`
	Quantity        int             `json:"quantity"`
	MinimumQuantity int             `json:"minimum_quantity"`
	IsSaved         bool            `json:"is_saved"`
}

// Review is a normalized store or product review.
type Review struct {
	ID      string  `json:"id"`
	Author  string  `json:"author"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

// Store is the canonical supplier shape.
type Store struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         StoreType `json:"type"`
	Logo         string    `json:"logo"`
	CoverImage   string    `json:"cover_image"`
	Rating       float64   `json:"rating"`
	ReviewCount  int       `json:"review_count"`
	Reviews      []Review  `json:"reviews"`
	Verified     bool      `json:"verified"`
	Location     string    `json:"location"`
	ProductCount int       `json:"product_count"`
}

// RawProduct mirrors the backend product payload. Numeric fields arrive as
// numbers or quoted strings depending on the endpoint, hence flexNumber.
type RawProduct struct {
	ID              json.Number  `json:"id"`
	Name            string       `json:"name"`
	Price           flexNumber   `json:"price"`
	OriginalPrice   flexNumber   `json:"original_price"`
	Image           string       `json:"image"`
	Pictures        []RawPicture `json:"pictures"`
	Quantity        flexNumber   `json:"quantity"`
	MinimumQuantity flexNumber   `json:"minimum_quantity"`
	Category        string       `json:"category"`
	Featured        bool         `json:"featured"`
	SupplierID      json.Number  `json:"supplier_id"`
	Reviews         []RawReview  `json:"reviews"`
	IsSaved         bool         `json:"is_saved"`
}

// RawPicture is a backend gallery entry.
type RawPicture struct {
	ID      json.Number `json:"id"`
	Picture string      `json:"picture"`
}

// RawReview is a backend review record.
type RawReview struct {
	ID      json.Number `json:"id"`
	Author  string      `json:"author_name"`
	Rating  flexNumber  `json:"rating"`
	Comment string      `json:"comment"`
}

// RawSupplier mirrors the backend supplier payload.
type RawSupplier struct {
	ID           json.Number `json:"id"`
	BusinessName string      `json:"business_name"`
	Kind         string      `json:"type"`
	Picture      string      `json:"picture"`
	CoverPicture string      `json:"cover_picture"`
	Verified     bool        `json:"verified"`
	Location     string      `json:"location"`
	Reviews      []RawReview `json:"reviews"`
	ProductCount flexNumber  `json:"product_count"`
}
