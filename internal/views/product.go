package views

import (
	"context"
	"fmt"
	"io"
	"slices"

	apiclient "github.com/marketwatch/pricewatch/internal/api/client"
	"github.com/marketwatch/pricewatch/internal/query"
	"github.com/marketwatch/pricewatch/pkg/format"
	domain "github.com/marketwatch/pricewatch/pkg/types"
)

// ProductDetail aggregates everything the product screen shows.
type ProductDetail struct {
	Product *domain.Product
	Offers  []domain.Offer
	History []domain.PricePoint
}

// ProductView is the product detail screen: core product data, the offer
// table sorted by total price, and the price-history chart for the best
// offer.
type ProductView struct {
	client *apiclient.Client
	cache  *query.Cache
}

// NewProductView creates the product screen over the given client and cache.
func NewProductView(c *apiclient.Client, cache *query.Cache) *ProductView {
	return &ProductView{client: c, cache: cache}
}

// Run resolves the product and offer queries. A non-positive id is the
// guard condition and leaves the view idle. A failure of either query is
// the single combined error state; a missing product is not distinguished
// from any other fetch failure. Price history is decorative: when it
// cannot be fetched the chart is simply omitted.
func (v *ProductView) Run(ctx context.Context, progress io.Writer, id int) query.Result[ProductDetail] {
	if id <= 0 {
		return query.IdleResult[ProductDetail]()
	}

	productQ := query.New(v.cache, query.ProductKey(id),
		func(ctx context.Context) (*domain.Product, error) {
			return v.client.GetProduct(ctx, id)
		})
	productQ.Observer = func(r query.Result[*domain.Product]) {
		if r.State == query.StateLoading {
			fmt.Fprintln(progress, "상품 정보를 불러오는 중...")
		}
	}

	offersQ := query.New(v.cache, query.OffersKey(id),
		func(ctx context.Context) ([]domain.Offer, error) {
			return v.client.ListOffers(ctx, apiclient.OfferParams{ProductID: id})
		})

	productRes := productQ.Run(ctx)
	if productRes.State == query.StateError {
		return query.ErrorResult[ProductDetail](productRes.Err)
	}
	offersRes := offersQ.Run(ctx)
	if offersRes.State == query.StateError {
		return query.ErrorResult[ProductDetail](offersRes.Err)
	}

	offers := slices.Clone(offersRes.Data)
	slices.SortFunc(offers, func(a, b domain.Offer) int {
		switch {
		case a.TotalPrice < b.TotalPrice:
			return -1
		case a.TotalPrice > b.TotalPrice:
			return 1
		default:
			return 0
		}
	})

	detail := ProductDetail{Product: productRes.Data, Offers: offers}
	if len(offers) > 0 {
		detail.History = v.bestOfferHistory(ctx, offers[0].ID)
	}

	return query.SuccessResult(detail, productRes.FetchedAt)
}

func (v *ProductView) bestOfferHistory(ctx context.Context, offerID int) []domain.PricePoint {
	historyQ := query.New(v.cache, query.HistoryKey(offerID),
		func(ctx context.Context) ([]domain.PricePoint, error) {
			return v.client.ListPriceHistory(ctx, apiclient.HistoryParams{OfferID: offerID})
		})

	res := historyQ.Run(ctx)
	if res.State != query.StateSuccess {
		return nil
	}
	return res.Data
}

// State maps a combined result onto the view's render state.
func (v *ProductView) State(res query.Result[ProductDetail]) ViewState {
	switch res.State {
	case query.StateIdle:
		return ViewIdle
	case query.StateLoading:
		return ViewLoading
	case query.StateError:
		return ViewError
	default:
		if res.Data.Product == nil {
			return ViewEmpty
		}
		return ViewPopulated
	}
}

// Render writes the screen for the given result.
func (v *ProductView) Render(w io.Writer, id int, res query.Result[ProductDetail]) error {
	switch v.State(res) {
	case ViewIdle:
		_, err := fmt.Fprintln(w, "상품 ID를 입력해주세요.")
		return err
	case ViewError:
		return renderError(w, res.Err,
			fmt.Sprintf("다시 시도: pricewatch product %d", id))
	case ViewEmpty:
		_, err := fmt.Fprintln(w, "상품 정보가 없습니다.")
		return err
	default:
		return v.renderDetail(w, res.Data)
	}
}

func (v *ProductView) renderDetail(w io.Writer, detail ProductDetail) error {
	p := detail.Product

	tw := newTabWriter(w)
	tw.writef("Brand:\t%s\n", p.Brand)
	tw.writef("Model:\t%s\n", p.ModelCode)
	tw.writef("Name:\t%s\n", p.Name)
	if p.GTIN != "" {
		tw.writef("GTIN:\t%s\n", p.GTIN)
	}
	if p.BestPrice != nil {
		tw.writef("최저가:\t%s (배송비 포함, %s)\n",
			format.Price(p.BestPrice.TotalPrice), p.BestPrice.Marketplace)
	}
	tw.writef("등록일:\t%s\n", format.Date(p.CreatedAt))
	if err := tw.finish(); err != nil {
		return err
	}

	if len(detail.Offers) == 0 {
		_, err := fmt.Fprintln(w, "\n판매처가 아직 없습니다.")
		return err
	}

	fmt.Fprintf(w, "\n판매처 %d곳 (총가격순)\n", len(detail.Offers))
	tw = newTabWriter(w)
	tw.writef("MARKETPLACE\tSELLER\tPRICE\tSHIPPING\tTOTAL\tURL\n")
	for i := range detail.Offers {
		o := &detail.Offers[i]
		name := format.MarketplaceColor(o.Marketplace).Paint(o.Marketplace)
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\n",
			name,
			o.Seller,
			format.Price(o.Price),
			format.Price(o.ShippingFee),
			format.Price(o.TotalPrice),
			truncate(o.BuyURL(), 48),
		)
	}
	if err := tw.finish(); err != nil {
		return err
	}

	if chart := renderPriceChart(detail.History); chart != "" {
		if _, err := fmt.Fprintf(w, "\n%s\n", chart); err != nil {
			return err
		}
	}
	return nil
}
