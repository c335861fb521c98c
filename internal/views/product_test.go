package views

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/marketwatch/pricewatch/internal/api/client"
	"github.com/marketwatch/pricewatch/internal/query"
	domain "github.com/marketwatch/pricewatch/pkg/types"
)

func productBackend(t *testing.T, requests *atomic.Int64) *httptest.Server {
	t.Helper()

	day := func(d int) time.Time {
		return time.Date(2026, time.August, d, 0, 0, 0, 0, time.UTC)
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/api/v1/products/42/":
			_ = json.NewEncoder(w).Encode(domain.Product{
				ID:        42,
				Brand:     "삼성전자",
				ModelCode: "SM-S921N",
				Name:      "갤럭시 S24",
				BestPrice: &domain.BestPrice{TotalPrice: 1203000, Marketplace: "쿠팡"},
				CreatedAt: day(1),
			})
		case r.URL.Path == "/api/v1/offers/":
			assert.Equal(t, "42", r.URL.Query().Get("product_id"))
			_ = json.NewEncoder(w).Encode(map[string]any{"results": []domain.Offer{
				{ID: 2, Marketplace: "11번가", Seller: "딜러B", Price: 1250000, ShippingFee: 0, TotalPrice: 1250000, URL: "https://11st.example/2"},
				{ID: 1, Marketplace: "쿠팡", Seller: "딜러A", Price: 1200000, ShippingFee: 3000, TotalPrice: 1203000, URL: "https://coupang.example/1"},
			}})
		case r.URL.Path == "/api/v1/price-history/":
			assert.Equal(t, "1", r.URL.Query().Get("offer_id"), "history must follow the best offer")
			_ = json.NewEncoder(w).Encode(map[string]any{"results": []domain.PricePoint{
				{ID: 1, TotalPrice: 1250000, RecordedAt: day(20)},
				{ID: 2, TotalPrice: 1230000, RecordedAt: day(24)},
				{ID: 3, TotalPrice: 1203000, RecordedAt: day(28)},
			}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestProductView_Populated(t *testing.T) {
	t.Parallel()

	var requests atomic.Int64
	srv := productBackend(t, &requests)
	defer srv.Close()

	v := NewProductView(apiclient.New(srv.URL), query.NewCache())

	var progress, out bytes.Buffer
	res := v.Run(context.Background(), &progress, 42)

	require.Equal(t, query.StateSuccess, res.State)
	assert.Equal(t, ViewPopulated, v.State(res))
	require.Len(t, res.Data.Offers, 2)
	assert.Equal(t, 1203000.0, res.Data.Offers[0].TotalPrice, "offers must be sorted by total price")
	require.Len(t, res.Data.History, 3)

	require.NoError(t, v.Render(&out, 42, res))
	rendered := out.String()
	assert.Contains(t, rendered, "삼성전자")
	assert.Contains(t, rendered, "SM-S921N")
	assert.Contains(t, rendered, "₩1,203,000")
	assert.Contains(t, rendered, "가격 변동 추이")
	// Caption carries the price band in 만원 units.
	assert.Contains(t, rendered, "120만원")
	assert.Contains(t, rendered, "125만원")

	// The offer table lists the cheapest offer first.
	coupangRow := strings.Index(rendered, "딜러A")
	elevenRow := strings.Index(rendered, "딜러B")
	require.Positive(t, coupangRow)
	assert.Less(t, coupangRow, elevenRow)
}

func TestProductView_IdleForNonPositiveID(t *testing.T) {
	t.Parallel()

	var requests atomic.Int64
	srv := productBackend(t, &requests)
	defer srv.Close()

	v := NewProductView(apiclient.New(srv.URL), query.NewCache())

	res := v.Run(context.Background(), &bytes.Buffer{}, 0)

	assert.Equal(t, query.StateIdle, res.State)
	assert.Equal(t, ViewIdle, v.State(res))
	assert.Equal(t, int64(0), requests.Load())
}

func TestProductView_MissingProductIsGenericError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not found."}`))
	}))
	defer srv.Close()

	v := NewProductView(apiclient.New(srv.URL), query.NewCache())

	var out bytes.Buffer
	res := v.Run(context.Background(), &out, 999)

	require.Equal(t, query.StateError, res.State)
	assert.Equal(t, ViewError, v.State(res))

	out.Reset()
	require.NoError(t, v.Render(&out, 999, res))
	assert.Contains(t, out.String(), "요청에 실패했습니다")
	assert.Contains(t, out.String(), "pricewatch product 999")
}

func TestProductView_HistoryFailureOmitsChart(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/api/v1/products/42/":
			_ = json.NewEncoder(w).Encode(domain.Product{ID: 42, Name: "갤럭시 S24"})
		case r.URL.Path == "/api/v1/offers/":
			_ = json.NewEncoder(w).Encode(map[string]any{"results": []domain.Offer{
				{ID: 1, Marketplace: "쿠팡", TotalPrice: 1203000, URL: "https://coupang.example/1"},
			}})
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	v := NewProductView(apiclient.New(srv.URL), query.NewCache())

	var out bytes.Buffer
	res := v.Run(context.Background(), &out, 42)

	require.Equal(t, query.StateSuccess, res.State)
	assert.Empty(t, res.Data.History)

	out.Reset()
	require.NoError(t, v.Render(&out, 42, res))
	assert.NotContains(t, out.String(), "가격 변동 추이")
}
