package client

import (
	"context"
	"net/url"
	"strconv"

	domain "github.com/marketwatch/pricewatch/pkg/types"
)

// OfferParams defines optional filters for offer listings. Zero values are
// treated as absent and produce no query parameter at all.
type OfferParams struct {
	ProductID   int
	Marketplace string
}

// ListOffers returns offers matching the given filters.
func (c *Client) ListOffers(ctx context.Context, params OfferParams) ([]domain.Offer, error) {
	q := url.Values{}
	if params.ProductID > 0 {
		q.Set("product_id", strconv.Itoa(params.ProductID))
	}
	if params.Marketplace != "" {
		q.Set("marketplace", params.Marketplace)
	}

	path := "/offers/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var env resultsEnvelope[domain.Offer]
	if err := c.get(ctx, path, &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}
