package views

import (
	"fmt"
	"math"
	"slices"

	"github.com/guptarohit/asciigraph"

	"github.com/marketwatch/pricewatch/pkg/format"
	domain "github.com/marketwatch/pricewatch/pkg/types"
)

// Chart dimensions for the product detail screen.
const (
	chartHeight = 8
	chartWidth  = 60
)

// renderPriceChart plots total price over time in 만원 units, oldest point
// first. Fewer than two points yields no chart.
func renderPriceChart(points []domain.PricePoint) string {
	if len(points) < 2 {
		return ""
	}

	sorted := slices.Clone(points)
	slices.SortFunc(sorted, func(a, b domain.PricePoint) int {
		return a.RecordedAt.Compare(b.RecordedAt)
	})

	values := make([]float64, len(sorted))
	low, high := sorted[0].TotalPrice, sorted[0].TotalPrice
	for i := range sorted {
		values[i] = sorted[i].TotalPrice / 10000
		low = math.Min(low, sorted[i].TotalPrice)
		high = math.Max(high, sorted[i].TotalPrice)
	}

	caption := fmt.Sprintf("가격 변동 추이 %s ~ %s (%s ~ %s)",
		sorted[0].RecordedAt.Format("1/2"),
		sorted[len(sorted)-1].RecordedAt.Format("1/2"),
		format.AxisPrice(low),
		format.AxisPrice(high),
	)

	return asciigraph.Plot(values,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
	)
}
