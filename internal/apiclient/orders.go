package apiclient

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/example/storefront-sdk/internal/cart"
)

// BuyNowRequest is the single-product order payload.
type BuyNowRequest struct {
	ProductID   string `json:"product_id"`
	Quantity    int    `json:"quantity"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	WilayaID    int    `json:"wilaya_id"`
	CommuneID   int    `json:"commune_id"`
}

// SubmitBuyNow places a single-product order, bypassing the cart.
func (c *Client) SubmitBuyNow(ctx context.Context, req BuyNowRequest) (string, error) {
	var resp struct {
		OrderID string `json:"order_id"`
	}
	if err := c.post(ctx, "/orders/buy-now", req, &resp); err != nil {
		return "", err
	}
	return resp.OrderID, nil
}

type validateItem struct {
	ProductID string            `json:"product_id"`
	Quantity  int               `json:"quantity"`
	UnitPrice decimal.Decimal   `json:"unit_price"`
	Options   map[string]string `json:"options,omitempty"`
}

type validateRequest struct {
	FullName    string         `json:"full_name"`
	PhoneNumber string         `json:"phone_number"`
	Address     string         `json:"address"`
	WilayaID    int            `json:"wilaya_id"`
	CommuneID   int            `json:"commune_id"`
	Items       []validateItem `json:"items"`
}

// ValidateCart submits the whole cart. The backend splits it into one
// order per distinct seller and returns every id it created, primary
// first. Implements cart.Submitter.
func (c *Client) ValidateCart(ctx context.Context, shipping cart.ShippingInfo, lines []cart.Line) ([]string, error) {
	req := validateRequest{
		FullName:    shipping.FullName,
		PhoneNumber: shipping.PhoneNumber,
		Address:     shipping.Address,
		WilayaID:    shipping.WilayaID,
		CommuneID:   shipping.CommuneID,
	}
	for _, line := range lines {
		req.Items = append(req.Items, validateItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Options:   line.Options,
		})
	}

	var resp struct {
		OrderIDs []string `json:"order_ids"`
	}
	if err := c.post(ctx, "/orders/validate", req, &resp); err != nil {
		return nil, err
	}
	return resp.OrderIDs, nil
}
