package client

import (
	"context"
	"fmt"

	domain "github.com/marketwatch/pricewatch/pkg/types"
)

// ListProducts returns the full product catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var env resultsEnvelope[domain.Product]
	if err := c.get(ctx, "/products/", &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}

// GetProduct returns a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var p domain.Product
	if err := c.get(ctx, fmt.Sprintf("/products/%d/", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}
