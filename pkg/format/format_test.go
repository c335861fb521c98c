package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "₩0"},
		{1000, "₩1,000"},
		{1234567, "₩1,234,567"},
		{989000, "₩989,000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Price(tt.in))
	}
}

func TestAxisPrice(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "120만원", AxisPrice(1200000))
	assert.Equal(t, "99만원", AxisPrice(985000))
	// Half-way values round up, not to even.
	assert.Equal(t, "13만원", AxisPrice(125000))
	assert.Equal(t, "0만원", AxisPrice(0))
}

func TestDate(t *testing.T) {
	t.Parallel()

	d := time.Date(2026, time.August, 28, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "2026년 8월 28일", Date(d))
}

func TestMarketplaceColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want Color
	}{
		{"쿠팡", ColorOrange},
		{"11번가", ColorBlue},
		{"G마켓", ColorGreen},
		{"옥션", ColorPurple},
		{"네이버", ColorDarkGreen},
		{"카카오", ColorYellow},
		{"UnknownMarket", ColorGray},
		{"", ColorGray},
	}

	for _, tt := range tests {
		got := MarketplaceColor(tt.name)
		assert.Equal(t, tt.want, got)
		assert.NotEmpty(t, got)
	}
}

func TestClasses(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "badge badge-lg", Classes("badge", "", "badge-lg"))
	assert.Equal(t, "", Classes("", ""))
	// Order-preserving, no deduplication.
	assert.Equal(t, "a b a", Classes("a", "b", "a"))
}

func TestIf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "active", If(true, "active"))
	assert.Equal(t, "", If(false, "active"))
	assert.Equal(t, "badge active", Classes("badge", If(true, "active"), If(false, "hidden")))
}
