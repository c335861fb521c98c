package main

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/marketwatch/pricewatch/internal/api/client"
	"github.com/marketwatch/pricewatch/pkg/logger"
)

// The mock server is exercised through the typed API client so both sides
// of the wire format are checked at once.
func newTestClient(t *testing.T) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(newServer(logger.Nop()))
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL)
}

func TestMockServer_Search(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)

	res, err := c.Search(context.Background(), "갤럭시")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	require.NotNil(t, res.BestPrice)
	assert.Equal(t, 1142000.0, res.BestPrice.TotalPrice, "best price includes shipping")
	assert.Equal(t, "11번가", res.BestPrice.Marketplace)
	assert.Equal(t, 1, res.BestPrice.ProductID)

	res, err = c.Search(context.Background(), "SM-S928N")
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "갤럭시 S24 울트라 512GB", res.Products[0].Name)

	res, err = c.Search(context.Background(), "존재하지않는상품")
	require.NoError(t, err)
	assert.Zero(t, res.Count)
	assert.Nil(t, res.BestPrice)
}

func TestMockServer_ProductDetail(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)

	p, err := c.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "삼성전자", p.Brand)
	assert.Equal(t, 3, p.OfferCount)
	assert.ElementsMatch(t, []string{"쿠팡", "11번가", "G마켓"}, p.Marketplaces)
	require.NotNil(t, p.BestPrice)
	assert.Equal(t, 1142000.0, p.BestPrice.TotalPrice)

	_, err = c.GetProduct(context.Background(), 999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestMockServer_OfferFilters(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)
	ctx := context.Background()

	all, err := c.ListOffers(ctx, apiclient.OfferParams{})
	require.NoError(t, err)
	assert.Len(t, all, 10)

	byProduct, err := c.ListOffers(ctx, apiclient.OfferParams{ProductID: 1})
	require.NoError(t, err)
	require.Len(t, byProduct, 3)
	assert.Equal(t, "갤럭시 S24 256GB", byProduct[0].ProductName, "offers carry product annotations")

	byBoth, err := c.ListOffers(ctx, apiclient.OfferParams{ProductID: 1, Marketplace: "쿠팡"})
	require.NoError(t, err)
	require.Len(t, byBoth, 1)
	assert.Equal(t, "https://link.example/c/11", byBoth[0].BuyURL())
}

func TestMockServer_PriceHistoryIsStable(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)
	ctx := context.Background()

	first, err := c.ListPriceHistory(ctx, apiclient.HistoryParams{OfferID: 11})
	require.NoError(t, err)
	require.Len(t, first, historyDays)

	// Chronological order, ends at the live price, stays within the walk band.
	last := first[len(first)-1]
	assert.Equal(t, 1150000.0, last.TotalPrice)
	for i := 1; i < len(first); i++ {
		assert.True(t, first[i-1].RecordedAt.Before(first[i].RecordedAt))
	}
	for _, p := range first {
		assert.InDelta(t, 1150000.0, p.TotalPrice, 1150000.0*0.11)
	}

	second, err := c.ListPriceHistory(ctx, apiclient.HistoryParams{OfferID: 11})
	require.NoError(t, err)
	assert.Equal(t, first, second, "repeated requests return the same walk")
}

func TestMockServer_WatchLifecycle(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)
	ctx := context.Background()

	watches, err := c.ListWatches(ctx, apiclient.WatchParams{UserID: 1})
	require.NoError(t, err)
	assert.Empty(t, watches)

	created, err := c.CreateWatch(ctx, apiclient.CreateWatchRequest{UserID: 1, Product: 1, TargetPrice: 1100000})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, "갤럭시 S24 256GB", created.Product.Name, "create embeds the full product")

	newTarget := 1150000.0
	updated, err := c.UpdateWatch(ctx, created.ID, apiclient.WatchPatch{TargetPrice: &newTarget})
	require.NoError(t, err)
	assert.Equal(t, newTarget, updated.TargetPrice)
	assert.True(t, updated.IsActive, "partial patch leaves the active flag alone")
	assert.True(t, updated.TargetMet(), "best total price 1,142,000 meets the raised target")

	watches, err = c.ListWatches(ctx, apiclient.WatchParams{UserID: 1})
	require.NoError(t, err)
	require.Len(t, watches, 1)

	otherUser, err := c.ListWatches(ctx, apiclient.WatchParams{UserID: 2})
	require.NoError(t, err)
	assert.Empty(t, otherUser, "watches are scoped to their owner")

	require.NoError(t, c.DeleteWatch(ctx, created.ID))
	err = c.DeleteWatch(ctx, created.ID)
	require.Error(t, err, "second delete hits a missing watch")

	_, err = c.CreateWatch(ctx, apiclient.CreateWatchRequest{UserID: 1, Product: 999, TargetPrice: 1})
	require.Error(t, err, "watching an unknown product is rejected")
}
