package apiclient

import (
	"context"
	"fmt"
)

// Wilaya is a top-level shipping region.
type Wilaya struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Commune is a sub-region of a wilaya.
type Commune struct {
	ID       int    `json:"id"`
	WilayaID int    `json:"wilaya_id"`
	Name     string `json:"name"`
}

// FetchWilayas lists all shipping regions.
func (c *Client) FetchWilayas(ctx context.Context) ([]Wilaya, error) {
	var wilayas []Wilaya
	if err := c.get(ctx, "/wilayas", &wilayas); err != nil {
		return nil, err
	}
	return wilayas, nil
}

// FetchCommunes lists the sub-regions of one wilaya.
func (c *Client) FetchCommunes(ctx context.Context, wilayaID int) ([]Commune, error) {
	var communes []Commune
	if err := c.get(ctx, fmt.Sprintf("/wilayas/%d/communes", wilayaID), &communes); err != nil {
		return nil, err
	}
	return communes, nil
}
