package apiclient

import "context"

type savedRequest struct {
	ProductID string `json:"product_id"`
}

// SaveProduct marks a product as saved on the backend. The call carries
// its own short timeout so optimistic UI state can be reverted quickly.
func (c *Client) SaveProduct(ctx context.Context, productID string) error {
	ctx, cancel := context.WithTimeout(ctx, SaveTimeout)
	defer cancel()
	return c.post(ctx, "/saved-products/save", savedRequest{ProductID: productID}, nil)
}

// UnsaveProduct removes a saved mark on the backend.
func (c *Client) UnsaveProduct(ctx context.Context, productID string) error {
	ctx, cancel := context.WithTimeout(ctx, SaveTimeout)
	defer cancel()
	return c.post(ctx, "/saved-products/unsave", savedRequest{ProductID: productID}, nil)
}
