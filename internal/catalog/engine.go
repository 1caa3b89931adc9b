package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// SortKey selects the catalog ordering.
type SortKey string

const (
	SortPopularity   SortKey = "popularity"
	SortPriceLowHigh SortKey = "price-low-high"
	SortPriceHighLow SortKey = "price-high-low"
	SortRating       SortKey = "rating"
	SortNewest       SortKey = "newest"
)

// StoreTypeAll is the sentinel that disables store-type filtering.
const StoreTypeAll StoreType = "all"

const DefaultPageSize = 12

// Filter holds the catalog view state. Mutate it only through the setters:
// changing a filter dimension rewinds to page 1, changing the window does not.
type Filter struct {
	SearchTerm        string
	SortBy            SortKey
	PriceMin          decimal.Decimal
	PriceMax          decimal.Decimal
	SelectedStoreID   string
	SelectedStoreType StoreType
	Page              int
	PageSize          int
}

// NewFilter returns the default unfiltered state.
func NewFilter() *Filter {
	return &Filter{
		SortBy:            SortPopularity,
		PriceMin:          decimal.Zero,
		PriceMax:          decimal.NewFromInt(1_000_000),
		SelectedStoreType: StoreTypeAll,
		Page:              1,
		PageSize:          DefaultPageSize,
	}
}

func (f *Filter) SetSearchTerm(term string) {
	f.SearchTerm = term
	f.Page = 1
}

func (f *Filter) SetSortBy(key SortKey) {
	f.SortBy = key
	f.Page = 1
}

func (f *Filter) SetPriceRange(min, max decimal.Decimal) {
	f.PriceMin = min
	f.PriceMax = max
	f.Page = 1
}

func (f *Filter) SetStoreID(id string) {
	f.SelectedStoreID = id
	f.Page = 1
}

func (f *Filter) SetStoreType(t StoreType) {
	f.SelectedStoreType = t
	f.Page = 1
}

func (f *Filter) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	f.Page = page
}

func (f *Filter) SetPageSize(size int) {
	if size < 1 {
		size = DefaultPageSize
	}
	f.PageSize = size
}

// Page is one materialized catalog page.
type Page struct {
	Items      []Product
	TotalPages int
}

// Apply runs the derivation pipeline over the full normalized collection.
// Stage order is fixed: self-exclusion, store-type, store-id, search, price
// range, sort, paginate. viewerStoreID is the viewer's own store, empty for
// plain buyers.
func Apply(products []Product, f *Filter, viewerStoreID string) Page {
	filtered := make([]Product, 0, len(products))

	term := strings.ToLower(strings.TrimSpace(f.SearchTerm))

	for _, p := range products {
		// Own products stay hidden unless the viewer navigated into
		// their own store explicitly.
		if viewerStoreID != "" && p.StoreID == viewerStoreID && f.SelectedStoreID != viewerStoreID {
			continue
		}
		if f.SelectedStoreType != StoreTypeAll && p.StoreType != f.SelectedStoreType {
			continue
		}
		if f.SelectedStoreID != "" && p.StoreID != f.SelectedStoreID {
			continue
		}
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		if p.Price.LessThan(f.PriceMin) || p.Price.GreaterThan(f.PriceMax) {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, f.SortBy)

	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	totalPages := (len(filtered) + pageSize - 1) / pageSize

	start := (f.Page - 1) * pageSize
	if start < 0 {
		start = 0
	}
	if start >= len(filtered) {
		return Page{Items: []Product{}, TotalPages: totalPages}
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return Page{Items: filtered[start:end], TotalPages: totalPages}
}

func matchesSearch(p Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Category), term) ||
		strings.Contains(strings.ToLower(p.StoreName), term)
}

func sortProducts(products []Product, key SortKey) {
	switch key {
	case SortPriceLowHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case SortPriceHighLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.GreaterThan(products[j].Price)
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return numericID(products[i].ID) > numericID(products[j].ID)
		})
	default: // popularity
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].ReviewCount > products[j].ReviewCount
		})
	}
}

// numericID treats ids as numbers when possible so "10" sorts after "9".
func numericID(id string) int64 {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
