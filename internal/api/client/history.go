package client

import (
	"context"
	"net/url"
	"strconv"

	domain "github.com/marketwatch/pricewatch/pkg/types"
)

// HistoryParams defines optional filters for price history queries.
type HistoryParams struct {
	OfferID int
}

// ListPriceHistory returns recorded price points, optionally restricted to
// a single offer. Ordering is the server's; renderers sort by recorded
// time themselves.
func (c *Client) ListPriceHistory(ctx context.Context, params HistoryParams) ([]domain.PricePoint, error) {
	q := url.Values{}
	if params.OfferID > 0 {
		q.Set("offer_id", strconv.Itoa(params.OfferID))
	}

	path := "/price-history/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var env resultsEnvelope[domain.PricePoint]
	if err := c.get(ctx, path, &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}
