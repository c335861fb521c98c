package views

import (
	"context"
	"fmt"
	"io"

	apiclient "github.com/marketwatch/pricewatch/internal/api/client"
	"github.com/marketwatch/pricewatch/internal/query"
	"github.com/marketwatch/pricewatch/pkg/format"
	domain "github.com/marketwatch/pricewatch/pkg/types"
)

// WatchListView is the watch-list screen: the user's price-target watches
// plus the create/update/delete actions. Every successful mutation
// invalidates the watches cache key so the next render re-fetches the
// authoritative list; there is no optimistic local update.
type WatchListView struct {
	client *apiclient.Client
	cache  *query.Cache
	userID int

	create *query.Mutation[apiclient.CreateWatchRequest, *domain.Watch]
	update *query.Mutation[watchUpdate, *domain.Watch]
	delete *query.Mutation[int, struct{}]
}

type watchUpdate struct {
	id    int
	patch apiclient.WatchPatch
}

// NewWatchListView creates the watch-list screen for one user.
func NewWatchListView(c *apiclient.Client, cache *query.Cache, userID int) *WatchListView {
	v := &WatchListView{client: c, cache: cache, userID: userID}

	v.create = query.NewMutation(cache, "watches",
		func(ctx context.Context, req apiclient.CreateWatchRequest) (*domain.Watch, error) {
			return c.CreateWatch(ctx, req)
		},
		query.WatchesKey(),
	)
	v.update = query.NewMutation(cache, "watches",
		func(ctx context.Context, u watchUpdate) (*domain.Watch, error) {
			return c.UpdateWatch(ctx, u.id, u.patch)
		},
		query.WatchesKey(),
	)
	v.delete = query.NewMutation(cache, "watches",
		func(ctx context.Context, id int) (struct{}, error) {
			return struct{}{}, c.DeleteWatch(ctx, id)
		},
		query.WatchesKey(),
	)

	return v
}

// Run resolves the watch list query.
func (v *WatchListView) Run(ctx context.Context, progress io.Writer) query.Result[[]domain.Watch] {
	q := query.New(v.cache, query.WatchesKey(),
		func(ctx context.Context) ([]domain.Watch, error) {
			return v.client.ListWatches(ctx, apiclient.WatchParams{UserID: v.userID})
		})
	q.Observer = func(r query.Result[[]domain.Watch]) {
		if r.State == query.StateLoading {
			fmt.Fprintln(progress, "모니터링 목록을 불러오는 중...")
		}
	}
	return q.Run(ctx)
}

// Create registers a new watch for a product at a target price.
func (v *WatchListView) Create(ctx context.Context, productID int, targetPrice float64) (*domain.Watch, error) {
	return v.create.Do(ctx, apiclient.CreateWatchRequest{
		UserID:      v.userID,
		Product:     productID,
		TargetPrice: targetPrice,
	})
}

// SetTarget changes a watch's target price.
func (v *WatchListView) SetTarget(ctx context.Context, id int, target float64) (*domain.Watch, error) {
	return v.update.Do(ctx, watchUpdate{id: id, patch: apiclient.WatchPatch{TargetPrice: &target}})
}

// SetActive enables or disables a watch.
func (v *WatchListView) SetActive(ctx context.Context, id int, active bool) (*domain.Watch, error) {
	return v.update.Do(ctx, watchUpdate{id: id, patch: apiclient.WatchPatch{IsActive: &active}})
}

// Delete removes a watch. Deleting a watch that is already gone surfaces
// the backend's error; the next list render simply omits it either way.
func (v *WatchListView) Delete(ctx context.Context, id int) error {
	_, err := v.delete.Do(ctx, id)
	return err
}

// State maps a query result onto the view's render state.
func (v *WatchListView) State(res query.Result[[]domain.Watch]) ViewState {
	switch res.State {
	case query.StateIdle:
		return ViewIdle
	case query.StateLoading:
		return ViewLoading
	case query.StateError:
		return ViewError
	default:
		if len(res.Data) == 0 {
			return ViewEmpty
		}
		return ViewPopulated
	}
}

// Render writes the screen for the given result.
func (v *WatchListView) Render(w io.Writer, res query.Result[[]domain.Watch]) error {
	switch v.State(res) {
	case ViewError:
		return renderError(w, res.Err, "다시 시도: pricewatch watches list")
	case ViewEmpty:
		_, err := fmt.Fprintln(w, "등록된 모니터링이 없습니다. pricewatch watches add 로 추가하세요.")
		return err
	case ViewPopulated:
		return v.renderTable(w, res.Data)
	default:
		return nil
	}
}

func (v *WatchListView) renderTable(w io.Writer, watches []domain.Watch) error {
	tw := newTabWriter(w)
	tw.writef("ID\tPRODUCT\tTARGET\tBEST\tACTIVE\tREACHED\tCREATED\n")
	for i := range watches {
		wt := &watches[i]

		best := "-"
		if wt.Product.BestPrice != nil {
			best = format.Price(wt.Product.BestPrice.TotalPrice)
		}
		reached := ""
		if wt.TargetMet() {
			reached = "목표 도달"
		}

		tw.writef("%d\t%s\t%s\t%s\t%v\t%s\t%s\n",
			wt.ID,
			truncate(wt.Product.DisplayName(), 40),
			format.Price(wt.TargetPrice),
			best,
			wt.IsActive,
			reached,
			format.Date(wt.CreatedAt),
		)
	}
	return tw.finish()
}
