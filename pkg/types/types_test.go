package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatch_TargetMet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		bestPrice *BestPrice
		target    float64
		want      bool
	}{
		{
			name:      "no offers yet",
			bestPrice: nil,
			target:    1000000,
			want:      false,
		},
		{
			name:      "above target",
			bestPrice: &BestPrice{TotalPrice: 1250000},
			target:    1000000,
			want:      false,
		},
		{
			name:      "exactly at target",
			bestPrice: &BestPrice{TotalPrice: 1000000},
			target:    1000000,
			want:      true,
		},
		{
			name:      "below target",
			bestPrice: &BestPrice{TotalPrice: 980000},
			target:    1000000,
			want:      true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := Watch{
				Product:     Product{BestPrice: tt.bestPrice},
				TargetPrice: tt.target,
			}
			assert.Equal(t, tt.want, w.TargetMet())
		})
	}
}

func TestOffer_BuyURL(t *testing.T) {
	t.Parallel()

	o := Offer{URL: "https://shop.example/item/1"}
	assert.Equal(t, "https://shop.example/item/1", o.BuyURL())

	o.AffiliateURL = "https://aff.example/item/1"
	assert.Equal(t, "https://aff.example/item/1", o.BuyURL())
}

func TestProduct_DisplayName(t *testing.T) {
	t.Parallel()

	p := Product{Brand: "삼성전자", Name: "갤럭시 S24"}
	assert.Equal(t, "삼성전자 갤럭시 S24", p.DisplayName())

	p.Brand = ""
	assert.Equal(t, "갤럭시 S24", p.DisplayName())
}
