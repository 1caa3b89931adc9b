package apiclient

import (
	"context"

	"github.com/example/storefront-sdk/internal/catalog"
)

// envelope is the backend's standard list wrapper.
type envelope[T any] struct {
	Data []T `json:"data"`
}

// FetchProducts returns the raw product list. Normalization happens in
// the catalog package once suppliers are available.
func (c *Client) FetchProducts(ctx context.Context) ([]catalog.RawProduct, error) {
	var env envelope[catalog.RawProduct]
	if err := c.get(ctx, "/products", &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// FetchSuppliers returns the raw supplier list.
func (c *Client) FetchSuppliers(ctx context.Context) ([]catalog.RawSupplier, error) {
	var env envelope[catalog.RawSupplier]
	if err := c.get(ctx, "/suppliers", &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// FetchCatalog resolves suppliers first, then products against them; the
// supplier fetch is a hard sequential dependency of product normalization.
func (c *Client) FetchCatalog(ctx context.Context) ([]catalog.Product, []catalog.Store, error) {
	rawSuppliers, err := c.FetchSuppliers(ctx)
	if err != nil {
		return nil, nil, err
	}
	stores := make([]catalog.Store, 0, len(rawSuppliers))
	for _, raw := range rawSuppliers {
		stores = append(stores, catalog.NormalizeStore(raw, c.baseURL))
	}

	rawProducts, err := c.FetchProducts(ctx)
	if err != nil {
		return nil, nil, err
	}
	products := catalog.NormalizeProducts(rawProducts, stores, c.baseURL)
	return products, stores, nil
}
