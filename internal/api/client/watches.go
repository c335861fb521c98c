package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	domain "github.com/marketwatch/pricewatch/pkg/types"
)

// WatchParams defines optional filters for watch listings.
type WatchParams struct {
	UserID int
}

// CreateWatchRequest contains only the fields the API accepts on create.
// Product is the product ID, not an embedded record.
type CreateWatchRequest struct {
	UserID      int     `json:"user_id"`
	Product     int     `json:"product"`
	TargetPrice float64 `json:"target_price"`
}

// WatchPatch contains the mutable watch fields. Nil fields are omitted
// from the PATCH body and stay untouched server-side.
type WatchPatch struct {
	TargetPrice *float64 `json:"target_price,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// ListWatches returns watches, optionally restricted to one user.
func (c *Client) ListWatches(ctx context.Context, params WatchParams) ([]domain.Watch, error) {
	q := url.Values{}
	if params.UserID > 0 {
		q.Set("user_id", strconv.Itoa(params.UserID))
	}

	path := "/watches/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var env resultsEnvelope[domain.Watch]
	if err := c.get(ctx, path, &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}

// CreateWatch creates a new price watch and returns the created record.
func (c *Client) CreateWatch(ctx context.Context, req CreateWatchRequest) (*domain.Watch, error) {
	var created domain.Watch
	if err := c.post(ctx, "/watches/", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateWatch applies a partial update to a watch and returns the updated
// record.
func (c *Client) UpdateWatch(ctx context.Context, id int, patch WatchPatch) (*domain.Watch, error) {
	var updated domain.Watch
	if err := c.patch(ctx, fmt.Sprintf("/watches/%d/", id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteWatch deletes a watch by ID.
func (c *Client) DeleteWatch(ctx context.Context, id int) error {
	return c.del(ctx, fmt.Sprintf("/watches/%d/", id))
}
