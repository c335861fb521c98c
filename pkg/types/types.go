// Package domain defines the core value types exchanged with the
// marketwatch price-comparison API. All records are owned by the backend;
// the client only holds cached, possibly-stale copies.
package domain

import "time"

// BestPrice is the lowest total-price offer (shipping included) known for a
// product at query time. ProductID is populated only in search summaries.
type BestPrice struct {
	Price       float64 `json:"price"`
	TotalPrice  float64 `json:"total_price"`
	Marketplace string  `json:"marketplace"`
	Seller      string  `json:"seller"`
	ProductID   int     `json:"product_id,omitempty"`
}

// Product is a catalog entry aggregated across marketplaces.
type Product struct {
	ID           int        `json:"id"`
	Brand        string     `json:"brand"`
	ModelCode    string     `json:"model_code"`
	Name         string     `json:"name"`
	GTIN         string     `json:"gtin,omitempty"`
	BestPrice    *BestPrice `json:"best_price,omitempty"`
	OfferCount   int        `json:"offer_count"`
	Marketplaces []string   `json:"marketplaces"`
	CreatedAt    time.Time  `json:"created_at"`
}

// DisplayName returns "brand name" for headings, falling back to the bare
// name when the brand is unknown.
func (p *Product) DisplayName() string {
	if p.Brand == "" {
		return p.Name
	}
	return p.Brand + " " + p.Name
}

// Offer is a single marketplace listing for a product. TotalPrice is
// computed server-side as price + shipping fee and is trusted as-is.
type Offer struct {
	ID           int       `json:"id"`
	ProductBrand string    `json:"product_brand,omitempty"`
	ProductModel string    `json:"product_model,omitempty"`
	ProductName  string    `json:"product_name,omitempty"`
	Marketplace  string    `json:"marketplace"`
	Seller       string    `json:"seller"`
	Price        float64   `json:"price"`
	ShippingFee  float64   `json:"shipping_fee"`
	TotalPrice   float64   `json:"total_price"`
	URL          string    `json:"url"`
	AffiliateURL string    `json:"affiliate_url,omitempty"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// BuyURL prefers the affiliate link when one exists.
func (o *Offer) BuyURL() string {
	if o.AffiliateURL != "" {
		return o.AffiliateURL
	}
	return o.URL
}

// PricePoint is one sample in an offer's price history.
type PricePoint struct {
	ID          int       `json:"id"`
	Marketplace string    `json:"marketplace,omitempty"`
	Seller      string    `json:"seller,omitempty"`
	Price       float64   `json:"price"`
	TotalPrice  float64   `json:"total_price"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// Watch pairs a product with a user's target price. The product is embedded
// in list responses, not just referenced.
type Watch struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Product     Product   `json:"product"`
	TargetPrice float64   `json:"target_price"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// TargetMet reports whether the watched product's best total price has
// dropped to or below the target.
func (w *Watch) TargetMet() bool {
	if w.Product.BestPrice == nil {
		return false
	}
	return w.Product.BestPrice.TotalPrice <= w.TargetPrice
}

// SearchResult is the transient aggregate returned by the search endpoint.
// It is never persisted client-side beyond the query cache.
type SearchResult struct {
	Query     string     `json:"query"`
	Count     int        `json:"count"`
	Products  []Product  `json:"products"`
	Offers    []Offer    `json:"offers"`
	BestPrice *BestPrice `json:"best_price,omitempty"`
}
