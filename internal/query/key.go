// Package query is the view-state synchronization layer: it maps each
// view's data need to a stable cache key, fetches on miss or staleness
// expiry, exposes an Idle/Loading/Success/Error result, and invalidates
// affected keys after mutations.
package query

import "strconv"

// Key identifies a cached query result: a resource name plus its
// canonicalized parameters.
type Key struct {
	Resource string
	Params   string
}

// String returns the stable cache-addressing form of the key.
func (k Key) String() string {
	if k.Params == "" {
		return k.Resource
	}
	return k.Resource + "?" + k.Params
}

// SearchKey addresses a search result for the given query string.
func SearchKey(q string) Key {
	return Key{Resource: "search", Params: "q=" + q}
}

// ProductKey addresses a single product.
func ProductKey(id int) Key {
	return Key{Resource: "product", Params: "id=" + strconv.Itoa(id)}
}

// OffersKey addresses the offer list for a product.
func OffersKey(productID int) Key {
	return Key{Resource: "offers", Params: "product_id=" + strconv.Itoa(productID)}
}

// HistoryKey addresses the price history for an offer.
func HistoryKey(offerID int) Key {
	return Key{Resource: "price-history", Params: "offer_id=" + strconv.Itoa(offerID)}
}

// WatchesKey addresses the watch list. All watch mutations invalidate this
// single key regardless of the user filter.
func WatchesKey() Key {
	return Key{Resource: "watches"}
}
