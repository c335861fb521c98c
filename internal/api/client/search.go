package client

import (
	"context"
	"net/url"

	domain "github.com/marketwatch/pricewatch/pkg/types"
)

// Search runs a catalog search for the given query string.
func (c *Client) Search(ctx context.Context, query string) (*domain.SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)

	var result domain.SearchResult
	if err := c.get(ctx, "/search/?"+q.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
