package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	apiclient "github.com/marketwatch/pricewatch/internal/api/client"
	"github.com/marketwatch/pricewatch/internal/query"
	"github.com/marketwatch/pricewatch/pkg/format"
	domain "github.com/marketwatch/pricewatch/pkg/types"
)

// SearchView is the search screen: a query box over the catalog with a
// result grid of products and their best prices.
type SearchView struct {
	client *apiclient.Client
	cache  *query.Cache
}

// NewSearchView creates the search screen over the given client and cache.
func NewSearchView(c *apiclient.Client, cache *query.Cache) *SearchView {
	return &SearchView{client: c, cache: cache}
}

// Run resolves the search query. A blank or whitespace-only term is the
// guard condition: no request is issued and the view stays idle. Progress
// output is written only when an actual fetch happens, never on a cache
// hit.
func (v *SearchView) Run(ctx context.Context, progress io.Writer, rawQuery string) query.Result[*domain.SearchResult] {
	term := strings.TrimSpace(rawQuery)

	q := query.New(v.cache, query.SearchKey(term),
		func(ctx context.Context) (*domain.SearchResult, error) {
			return v.client.Search(ctx, term)
		})
	q.Enabled = func() bool { return term != "" }
	q.Observer = func(r query.Result[*domain.SearchResult]) {
		if r.State == query.StateLoading {
			fmt.Fprintf(progress, "검색 중: %q ...\n", term)
		}
	}

	return q.Run(ctx)
}

// State maps a query result onto the view's render state.
func (v *SearchView) State(res query.Result[*domain.SearchResult]) ViewState {
	switch res.State {
	case query.StateIdle:
		return ViewIdle
	case query.StateLoading:
		return ViewLoading
	case query.StateError:
		return ViewError
	default:
		if res.Data == nil || res.Data.Count == 0 {
			return ViewEmpty
		}
		return ViewPopulated
	}
}

// Render writes the screen for the given result.
func (v *SearchView) Render(w io.Writer, rawQuery string, res query.Result[*domain.SearchResult]) error {
	switch v.State(res) {
	case ViewIdle:
		_, err := fmt.Fprintln(w, "상품명, 브랜드, 모델명으로 검색하면 여러 마켓플레이스의 최저가를 비교할 수 있습니다.")
		return err
	case ViewError:
		return renderError(w, res.Err,
			fmt.Sprintf("다시 시도: pricewatch search %q", strings.TrimSpace(rawQuery)))
	case ViewEmpty:
		_, err := fmt.Fprintf(w, "%q 검색 결과가 없습니다. 다른 키워드로 검색해보세요.\n", res.Data.Query)
		return err
	default:
		return v.renderResults(w, res.Data)
	}
}

func (v *SearchView) renderResults(w io.Writer, result *domain.SearchResult) error {
	fmt.Fprintf(w, "%q 검색 결과: 총 %d개\n\n", result.Query, result.Count)

	tw := newTabWriter(w)
	tw.writef("ID\tPRODUCT\tBEST PRICE\tOFFERS\tMARKETPLACES\n")
	for i := range result.Products {
		p := &result.Products[i]

		best := "-"
		if p.BestPrice != nil {
			best = format.Price(p.BestPrice.TotalPrice)
		}

		badges := make([]string, 0, len(p.Marketplaces))
		for _, name := range p.Marketplaces {
			badges = append(badges, format.MarketplaceColor(name).Paint(name))
		}

		tw.writef("%d\t%s\t%s\t%d\t%s\n",
			p.ID,
			truncate(p.DisplayName(), 40),
			best,
			p.OfferCount,
			strings.Join(badges, " "),
		)
	}
	if err := tw.finish(); err != nil {
		return err
	}

	if result.BestPrice != nil {
		fmt.Fprintf(w, "\n최저가: %s (%s, %s) — product %d\n",
			format.Price(result.BestPrice.TotalPrice),
			result.BestPrice.Marketplace,
			result.BestPrice.Seller,
			result.BestPrice.ProductID,
		)
	}
	return nil
}
